package controllers

import (
	"jangbo/pkg/resp"
	"jangbo/services"

	"github.com/gin-gonic/gin"
)

type CounterController struct{ Svc *services.CounterService }

func NewCounterController(s *services.CounterService) *CounterController {
	return &CounterController{Svc: s}
}

// GET /stores/:id/counters
func (h *CounterController) Board(c *gin.Context) {
	out, err := h.Svc.Board(pathID(c, "id"))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /counters
func (h *CounterController) AllBoards(c *gin.Context) {
	out, err := h.Svc.AllBoards()
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}
