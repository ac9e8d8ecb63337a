package controllers

import (
	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type PaymentController struct{ Svc *services.PaymentService }

func NewPaymentController(s *services.PaymentService) *PaymentController {
	return &PaymentController{Svc: s}
}

// POST /orders/:id/payment
func (h *PaymentController) Request(c *gin.Context) {
	out, err := h.Svc.Request(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// GET /orders/:id/payment
func (h *PaymentController) Get(c *gin.Context) {
	out, err := h.Svc.GetForOrder(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /orders/:id/payment/cancel
func (h *PaymentController) Cancel(c *gin.Context) {
	out, err := h.Svc.Cancel(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /merchant/orders/:id/payment/approve
func (h *PaymentController) Approve(c *gin.Context) {
	out, err := h.Svc.Approve(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /merchant/orders/:id/payment/decline
func (h *PaymentController) Decline(c *gin.Context) {
	out, err := h.Svc.Decline(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}
