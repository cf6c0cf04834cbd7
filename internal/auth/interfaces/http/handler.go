// Package http 提供认证与用户资料的 HTTP 处理器。
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/foodordering/internal/auth/application"
	"github.com/wyfcoding/foodordering/pkg/middleware"
	"github.com/wyfcoding/foodordering/pkg/response"
)

// Handler 认证 HTTP 处理器
type Handler struct {
	svc *application.AuthService
}

// NewHandler 创建处理器实例
func NewHandler(svc *application.AuthService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册路由。rateLimited 作用于认证入口，authed 作用于资料接口。
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, rateLimited, authed gin.HandlerFunc) {
	auth := r.Group("/auth")
	auth.Use(rateLimited)
	{
		auth.POST("/signup", h.Signup)
		auth.POST("/login", h.Login)
	}

	users := r.Group("/users")
	users.Use(authed)
	{
		users.GET("/profile", h.GetProfile)
		users.PUT("/profile", h.UpdateProfile)
	}
}

// SignupRequest 注册请求
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone"`
}

// Signup 注册账号，成功返回 201 与令牌
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.Signup(c.Request.Context(), application.SignupCommand{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
		Phone:    req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "User registered successfully",
		"token":   result.Token,
		"user":    result.User,
	})
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login 登录，成功返回新令牌
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := h.svc.Login(c.Request.Context(), application.LoginCommand{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{
		"message": "Login successful",
		"token":   result.Token,
		"user":    result.User,
	})
}

// GetProfile 查询当前用户资料
func (h *Handler) GetProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	profile, err := h.svc.GetProfile(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, profile)
}

// UpdateProfileRequest 更新资料请求
type UpdateProfileRequest struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

// UpdateProfile 更新当前用户资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	err := h.svc.UpdateProfile(c.Request.Context(), application.UpdateProfileCommand{
		UserID: identity.UserID,
		Name:   req.Name,
		Phone:  req.Phone,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, gin.H{"message": "Profile updated successfully"})
}
