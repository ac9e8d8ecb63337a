package controllers

import (
	"strconv"

	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type CartController struct{ Svc *services.CartService }

func NewCartController(s *services.CartService) *CartController { return &CartController{Svc: s} }

// GET /cart — full cart with totals
func (h *CartController) Get(c *gin.Context) {
	out, err := h.Svc.Summary(utils.CurrentUserID(c), nil)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /cart/summary — totals for a selection of lines
func (h *CartController) Summary(c *gin.Context) {
	var body struct {
		SelectedItemIDs []uint `json:"selectedItemIds"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Summary(utils.CurrentUserID(c), body.SelectedItemIDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /cart/items
func (h *CartController) Add(c *gin.Context) {
	var in services.AddItemIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Add(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /cart/items/:id
func (h *CartController) UpdateQuantity(c *gin.Context) {
	itemID := pathID(c, "id")
	var in services.UpdateQuantityIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	if in.ItemID != itemID {
		resp.BadRequest(c, "itemId does not match path")
		return
	}
	out, err := h.Svc.UpdateQuantity(utils.CurrentUserID(c), itemID, in.Quantity)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// PATCH /cart/items/:id/increase
func (h *CartController) Increase(c *gin.Context) {
	h.adjust(c, +1)
}

// PATCH /cart/items/:id/decrease
func (h *CartController) Decrease(c *gin.Context) {
	h.adjust(c, -1)
}

func (h *CartController) adjust(c *gin.Context, delta int) {
	out, err := h.Svc.AdjustQuantity(utils.CurrentUserID(c), pathID(c, "id"), delta)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// DELETE /cart/items/:id
func (h *CartController) Remove(c *gin.Context) {
	n, err := h.Svc.Remove(utils.CurrentUserID(c), pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deletedCount": n, "message": "removed"})
}

// DELETE /cart/items — body {itemIds: [...]}
func (h *CartController) RemoveSelected(c *gin.Context) {
	var body struct {
		ItemIDs []uint `json:"itemIds" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	n, err := h.Svc.RemoveSelected(utils.CurrentUserID(c), body.ItemIDs)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deletedCount": n, "message": "removed"})
}

// DELETE /cart
func (h *CartController) Clear(c *gin.Context) {
	n, err := h.Svc.Clear(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, gin.H{"deletedCount": n, "message": "cart cleared"})
}

func pathID(c *gin.Context, name string) uint {
	v, _ := strconv.ParseUint(c.Param(name), 10, 64)
	return uint(v)
}
