package controllers

import (
	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type ProductController struct{ Svc *services.ProductService }

func NewProductController(s *services.ProductService) *ProductController {
	return &ProductController{Svc: s}
}

// GET /stores/:id/products
func (h *ProductController) ListByStore(c *gin.Context) {
	out, err := h.Svc.ListByStore(pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /products/:id
func (h *ProductController) Detail(c *gin.Context) {
	out, err := h.Svc.Detail(pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /merchant/stores/:id/products
func (h *ProductController) Create(c *gin.Context) {
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Create(utils.CurrentUserID(c), pathID(c, "id"), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /merchant/products/:id
func (h *ProductController) Update(c *gin.Context) {
	var in services.ProductIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Update(utils.CurrentUserID(c), pathID(c, "id"), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}
