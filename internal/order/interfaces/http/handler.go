// Package http 提供订单的 HTTP 处理器。
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/order/application"
	"github.com/wyfcoding/foodordering/pkg/middleware"
	"github.com/wyfcoding/foodordering/pkg/response"
)

// Handler 订单 HTTP 处理器
type Handler struct {
	cmd   *application.OrderCommandService
	query *application.OrderQueryService
}

// NewHandler 创建处理器实例
func NewHandler(cmd *application.OrderCommandService, query *application.OrderQueryService) *Handler {
	return &Handler{cmd: cmd, query: query}
}

// RegisterRoutes 注册路由，全部需要认证
func (h *Handler) RegisterRoutes(r *gin.RouterGroup, authed gin.HandlerFunc) {
	orders := r.Group("/orders")
	orders.Use(authed)
	{
		orders.POST("", h.CreateOrder)
		orders.GET("", h.ListOrders)
		orders.GET("/:id", h.GetOrder)
	}
}

// OrderItemRequest 下单行项
type OrderItemRequest struct {
	ID       uint            `json:"id"`
	Quantity int             `json:"quantity"`
	Price    decimal.Decimal `json:"price"`
}

// CreateOrderRequest 下单请求
type CreateOrderRequest struct {
	Items         []OrderItemRequest `json:"items"`
	Total         decimal.Decimal    `json:"total"`
	Address       string             `json:"address"`
	Phone         string             `json:"phone"`
	PaymentMethod string             `json:"payment_method"`
	Notes         string             `json:"notes"`
}

// CreateOrder 下单，成功返回 201 与订单号
func (h *Handler) CreateOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	var req CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid order data")
		return
	}

	cmd := application.PlaceOrderCommand{
		UserID:        identity.UserID,
		Total:         req.Total,
		Address:       req.Address,
		Phone:         req.Phone,
		PaymentMethod: req.PaymentMethod,
		Notes:         req.Notes,
	}
	for _, item := range req.Items {
		cmd.Items = append(cmd.Items, application.OrderItemInput{
			ProductID: item.ID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	orderID, err := h.cmd.PlaceOrder(c.Request.Context(), cmd)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Order placed successfully",
		"orderId": orderID,
	})
}

// ListOrders 返回当前用户的订单列表
func (h *Handler) ListOrders(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	orders, err := h.query.ListOrders(c.Request.Context(), identity.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, orders)
}

// GetOrder 返回当前用户的单个订单
func (h *Handler) GetOrder(c *gin.Context) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		response.ErrorWithStatus(c, http.StatusUnauthorized, "Authentication required")
		return
	}

	order, err := h.query.GetOrder(c.Request.Context(), identity.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, order)
}
