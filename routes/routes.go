package routes

import (
	"jangbo/configs"
	"jangbo/controllers"
	"jangbo/entity"
	"jangbo/middlewares"
	"jangbo/repository"
	"jangbo/services"
	"jangbo/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, cfg *configs.Config) {
	r.GET("/health", func(c *gin.Context) { c.JSON(200, gin.H{"ok": true}) })

	// Repositories
	userRepo := repository.NewUserRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	productRepo := repository.NewProductRepository(db)
	cartRepo := repository.NewCartRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	// Services
	authSvc := services.NewAuthService(cfg, userRepo)
	storeSvc := services.NewStoreService(storeRepo)
	productSvc := services.NewProductService(productRepo, storeRepo)
	cartSvc := services.NewCartService(db, cartRepo, productRepo)
	orderSvc := services.NewOrderService(db, orderRepo, cartRepo, productRepo, storeRepo)
	paymentSvc := services.NewPaymentService(db, paymentRepo, orderRepo, storeRepo)
	counterSvc := services.NewCounterService(orderRepo, storeRepo)

	// Live pickup board
	hub := ws.NewCounterHub(counterSvc)
	orderSvc.Notifier = hub
	go hub.Run()

	// Controllers
	authCtrl := controllers.NewAuthController(authSvc)
	storeCtrl := controllers.NewStoreController(storeSvc)
	productCtrl := controllers.NewProductController(productSvc)
	cartCtrl := controllers.NewCartController(cartSvc)
	orderCtrl := controllers.NewOrderController(orderSvc)
	merchantOrderCtrl := controllers.NewMerchantOrderController(orderSvc)
	paymentCtrl := controllers.NewPaymentController(paymentSvc)
	counterCtrl := controllers.NewCounterController(counterSvc)

	// Auth
	a := r.Group("/auth")
	{
		a.POST("/register", authCtrl.Register)
		a.POST("/login", authCtrl.Login)
		a.GET("/me", middlewares.AuthMiddleware(cfg.JWTSecret), authCtrl.Me)
	}

	// Public catalog + pickup boards
	r.GET("/stores", storeCtrl.List)
	r.GET("/stores/:id", storeCtrl.Detail)
	r.GET("/stores/:id/products", productCtrl.ListByStore)
	r.GET("/products/:id", productCtrl.Detail)
	r.GET("/stores/:id/counters", counterCtrl.Board)
	r.GET("/counters", counterCtrl.AllBoards)
	r.GET("/ws/stores/:id/counters", hub.Serve)

	// Cart (customer)
	cart := r.Group("/cart", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		cart.GET("", cartCtrl.Get)
		cart.POST("/summary", cartCtrl.Summary)
		cart.POST("/items", cartCtrl.Add)
		cart.PATCH("/items/:id", cartCtrl.UpdateQuantity)
		cart.PATCH("/items/:id/increase", cartCtrl.Increase)
		cart.PATCH("/items/:id/decrease", cartCtrl.Decrease)
		cart.DELETE("/items/:id", cartCtrl.Remove)
		cart.DELETE("/items", cartCtrl.RemoveSelected)
		cart.DELETE("", cartCtrl.Clear)
	}

	// Orders (customer)
	orders := r.Group("/orders", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleCustomer))
	{
		orders.POST("", orderCtrl.Create)
		orders.POST("/checkout", orderCtrl.Checkout)
		orders.GET("", orderCtrl.ListForMe)
		orders.GET("/:id", orderCtrl.Detail)
		orders.PATCH("/:id/cancel", orderCtrl.Cancel)
		orders.POST("/:id/payment", paymentCtrl.Request)
		orders.GET("/:id/payment", paymentCtrl.Get)
		orders.PATCH("/:id/payment/cancel", paymentCtrl.Cancel)
	}

	// Merchant
	merchant := r.Group("/merchant", middlewares.AuthMiddleware(cfg.JWTSecret, entity.RoleMerchant))
	{
		merchant.GET("/stores", storeCtrl.MyStores)
		merchant.POST("/stores", storeCtrl.Create)
		merchant.PATCH("/stores/:id", storeCtrl.Update)
		merchant.POST("/stores/:id/products", productCtrl.Create)
		merchant.PATCH("/products/:id", productCtrl.Update)

		merchant.GET("/stores/:id/orders", merchantOrderCtrl.ListForStore)
		merchant.PATCH("/orders/:id/accept", merchantOrderCtrl.Accept)
		merchant.PATCH("/orders/:id/preparing", merchantOrderCtrl.Preparing)
		merchant.PATCH("/orders/:id/ready", merchantOrderCtrl.Ready)
		merchant.PATCH("/orders/:id/complete", merchantOrderCtrl.Complete)
		merchant.PATCH("/orders/:id/cancel", merchantOrderCtrl.Cancel)
		merchant.PATCH("/orders/:id/payment/approve", paymentCtrl.Approve)
		merchant.PATCH("/orders/:id/payment/decline", paymentCtrl.Decline)
	}
}
