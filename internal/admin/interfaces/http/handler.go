// Package http 提供后台管理的 HTTP 处理器。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/admin/application"
	"github.com/wyfcoding/foodordering/pkg/response"
)

// Handler 后台管理 HTTP 处理器
type Handler struct {
	svc *application.AdminService
}

// NewHandler 创建处理器实例
func NewHandler(svc *application.AdminService) *Handler {
	return &Handler{svc: svc}
}

// RegisterRoutes 注册路由，全部需要认证且限管理员
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authed, adminOnly gin.HandlerFunc) {
	admin := r.Group("/admin")
	admin.Use(authed, adminOnly)
	{
		admin.GET("/orders", h.ListOrders)
		admin.PUT("/orders/:id", h.UpdateOrderStatus)
		admin.GET("/users", h.ListUsers)
		admin.POST("/products", h.CreateProduct)
		admin.PUT("/products/:id", h.UpdateProduct)
		admin.DELETE("/products/:id", h.DeleteProduct)
	}
}

// ListOrders 返回全部订单，支持 ?status= 过滤
func (h *Handler) ListOrders(c *gin.Context) {
	orders, err := h.svc.ListAllOrders(c.Request.Context(), c.Query("status"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// UpdateOrderStatusRequest 更新订单状态请求
type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus 更新订单状态
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid status")
		return
	}

	if err := h.svc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Order status updated successfully"})
}

// ListUsers 返回全部用户
func (h *Handler) ListUsers(c *gin.Context) {
	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, users)
}

// ProductRequest 商品创建/更新请求
type ProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	Image       string          `json:"image"`
	CategoryID  uint            `json:"category_id"`
	IsFeatured  bool            `json:"is_featured"`
}

func (r ProductRequest) toCommand() application.ProductCommand {
	return application.ProductCommand{
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		CategoryID:  r.CategoryID,
		IsFeatured:  r.IsFeatured,
	}
}

// CreateProduct 新增商品，成功返回 201 与商品 ID
func (h *Handler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Name, price, and category are required")
		return
	}

	id, err := h.svc.CreateProduct(c.Request.Context(), req.toCommand())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, gin.H{
		"message":   "Product added successfully",
		"productId": id,
	})
}

// UpdateProduct 更新商品
func (h *Handler) UpdateProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	var req ProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Name, price, and category are required")
		return
	}

	if err := h.svc.UpdateProduct(c.Request.Context(), uint(id), req.toCommand()); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Product updated successfully"})
}

// DeleteProduct 删除商品
func (h *Handler) DeleteProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	if err := h.svc.DeleteProduct(c.Request.Context(), uint(id)); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"message": "Product deleted successfully"})
}
