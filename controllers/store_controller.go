package controllers

import (
	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type StoreController struct{ Svc *services.StoreService }

func NewStoreController(s *services.StoreService) *StoreController { return &StoreController{Svc: s} }

// GET /stores
func (h *StoreController) List(c *gin.Context) {
	out, err := h.Svc.List()
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /stores/:id
func (h *StoreController) Detail(c *gin.Context) {
	out, err := h.Svc.Detail(pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// POST /merchant/stores
func (h *StoreController) Create(c *gin.Context) {
	var in services.StoreIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Create(utils.CurrentUserID(c), &in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// PATCH /merchant/stores/:id
func (h *StoreController) Update(c *gin.Context) {
	var in services.StoreIn
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

// GET /merchant/stores
func (h *StoreController) MyStores(c *gin.Context) {
	out, err := h.Svc.ListForMerchant(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}
