package controllers

import (
	"jangbo/pkg/resp"
	"jangbo/services"
	"jangbo/utils"

	"github.com/gin-gonic/gin"
)

type AuthController struct{ Svc *services.AuthService }

func NewAuthController(s *services.AuthService) *AuthController { return &AuthController{Svc: s} }

// POST /auth/register
func (h *AuthController) Register(c *gin.Context) {
	var in services.RegisterIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Register(&in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.Created(c, out)
}

// POST /auth/login
func (h *AuthController) Login(c *gin.Context) {
	var in services.LoginIn
	if err := c.ShouldBindJSON(&in); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}
	out, err := h.Svc.Login(&in)
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}

// GET /auth/me
func (h *AuthController) Me(c *gin.Context) {
	out, err := h.Svc.Me(utils.CurrentUserID(c))
	if err != nil {
		resp.Fail(c, err)
		return
	}
	resp.OK(c, out)
}
