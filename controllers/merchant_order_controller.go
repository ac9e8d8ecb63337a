package controllers

import (
	"strconv"

	"jangbo/entity"
	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type MerchantOrderController struct{ Svc *services.OrderService }

func NewMerchantOrderController(s *services.OrderService) *MerchantOrderController {
	return &MerchantOrderController{Svc: s}
}

// GET /merchant/stores/:id/orders?status=&limit=
func (h *MerchantOrderController) ListForStore(c *gin.Context) {
	var status *entity.OrderStatus
	if s := c.Query("status"); s != "" {
		st := entity.OrderStatus(s)
		status = &st
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))

	out, err := h.Svc.ListForStore(utils.CurrentUserID(c), pathID(c, "id"), status, limit)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /merchant/orders/:id/accept?preparationTime=15
func (h *MerchantOrderController) Accept(c *gin.Context) {
	prep, err := strconv.Atoi(c.Query("preparationTime"))
	if err != nil {
		resp.BadRequest(c, "preparationTime is required")
		return
	}
	if err := h.Svc.Accept(utils.CurrentUserID(c), pathID(c, "id"), prep); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order accepted"})
}

// PATCH /merchant/orders/:id/preparing
func (h *MerchantOrderController) Preparing(c *gin.Context) {
	if err := h.Svc.MarkPreparing(utils.CurrentUserID(c), pathID(c, "id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order is being prepared"})
}

// PATCH /merchant/orders/:id/ready
func (h *MerchantOrderController) Ready(c *gin.Context) {
	if err := h.Svc.MarkReady(utils.CurrentUserID(c), pathID(c, "id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order is ready for pickup"})
}

// PATCH /merchant/orders/:id/complete
func (h *MerchantOrderController) Complete(c *gin.Context) {
	if err := h.Svc.Complete(utils.CurrentUserID(c), pathID(c, "id")); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order completed"})
}

// PATCH /merchant/orders/:id/cancel?reason=
func (h *MerchantOrderController) Cancel(c *gin.Context) {
	reason := c.Query("reason")
	if reason == "" {
		resp.BadRequest(c, "reason is required")
		return
	}
	if err := h.Svc.CancelByMerchant(utils.CurrentUserID(c), pathID(c, "id"), reason); err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"message": "order canceled"})
}
