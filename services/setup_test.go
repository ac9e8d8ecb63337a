package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"jangbo/entity"
	"jangbo/repository"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Each test gets its own named shared-cache database: a plain ":memory:" DSN
// gives every pooled connection a separate database, which breaks queries that
// run outside the service-layer transactions.
var testDBSeq atomic.Int64

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svcdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&entity.User{},
		&entity.Store{}, &entity.Product{},
		&entity.Cart{}, &entity.CartItem{},
		&entity.Order{}, &entity.OrderProduct{},
		&entity.Payment{},
	))
	return db
}

type fixture struct {
	db *gorm.DB

	customer entity.User
	merchant entity.User
	storeA   entity.Store
	storeB   entity.Store
	apple    entity.Product // store A, price 1000
	carrot   entity.Product // store A, price 500
	pork     entity.Product // store B, price 2000

	carts    *CartService
	orders   *OrderService
	payments *PaymentService
	counters *CounterService
	stores   *StoreService
	products *ProductService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := setupDB(t)
	f := &fixture{db: db}

	f.customer = entity.User{Email: "cust@example.com", Name: "Customer", Role: entity.RoleCustomer}
	f.merchant = entity.User{Email: "merch@example.com", Name: "Merchant", Role: entity.RoleMerchant}
	require.NoError(t, db.Create(&f.customer).Error)
	require.NoError(t, db.Create(&f.merchant).Error)

	f.storeA = entity.Store{Name: "Store A", MerchantID: f.merchant.ID}
	f.storeB = entity.Store{Name: "Store B", MerchantID: f.merchant.ID}
	require.NoError(t, db.Create(&f.storeA).Error)
	require.NoError(t, db.Create(&f.storeB).Error)

	f.apple = entity.Product{Name: "Apple", Price: 1000, Stock: 10, StoreID: f.storeA.ID}
	f.carrot = entity.Product{Name: "Carrot", Price: 500, Stock: 10, StoreID: f.storeA.ID}
	f.pork = entity.Product{Name: "Pork", Price: 2000, Stock: 10, StoreID: f.storeB.ID}
	require.NoError(t, db.Create(&f.apple).Error)
	require.NoError(t, db.Create(&f.carrot).Error)
	require.NoError(t, db.Create(&f.pork).Error)

	cartRepo := repository.NewCartRepository(db)
	productRepo := repository.NewProductRepository(db)
	storeRepo := repository.NewStoreRepository(db)
	orderRepo := repository.NewOrderRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)

	f.carts = NewCartService(db, cartRepo, productRepo)
	f.orders = NewOrderService(db, orderRepo, cartRepo, productRepo, storeRepo)
	f.payments = NewPaymentService(db, paymentRepo, orderRepo, storeRepo)
	f.counters = NewCounterService(orderRepo, storeRepo)
	f.stores = NewStoreService(storeRepo)
	f.products = NewProductService(productRepo, storeRepo)
	return f
}

func (f *fixture) productStock(t *testing.T, id uint) (int, bool) {
	t.Helper()
	var p entity.Product
	require.NoError(t, f.db.First(&p, id).Error)
	return p.Stock, p.SoldOut
}

func (f *fixture) orderByID(t *testing.T, id uint) *entity.Order {
	t.Helper()
	var o entity.Order
	require.NoError(t, f.db.Preload("Products").First(&o, id).Error)
	return &o
}
