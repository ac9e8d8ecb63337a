package controllers

import (
	"strconv"

	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type OrderController struct{ Svc *services.OrderService }

func NewOrderController(s *services.OrderService) *OrderController { return &OrderController{Svc: s} }

// POST /orders — explicit single- or multi-store request
func (h *OrderController) Create(c *gin.Context) {
	var req services.CreateOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Create(utils.CurrentUserID(c), &req)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /orders/checkout — from the cart; empty selection orders everything
func (h *OrderController) Checkout(c *gin.Context) {
	var req services.CheckoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Checkout(utils.CurrentUserID(c), req.SelectedItemIDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders
func (h *OrderController) ListForMe(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
	out, err := h.Svc.ListForCustomer(utils.CurrentUserID(c), limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /orders/:id
func (h *OrderController) Detail(c *gin.Context) {
	out, err := h.Svc.DetailForCustomer(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /orders/:id/cancel
func (h *OrderController) Cancel(c *gin.Context) {
	if err := h.Svc.CancelByCustomer(utils.CurrentUserID(c), pathID(c, "id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order canceled"})
}
