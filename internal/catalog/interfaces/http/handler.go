// Package http 提供商品目录的 HTTP 处理器。
package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/wyfcoding/foodordering/internal/catalog/application"
	"github.com/wyfcoding/foodordering/pkg/response"
)

// Handler 商品目录 HTTP 处理器
type Handler struct {
	query *application.CatalogQueryService
}

// NewHandler 创建处理器实例
func NewHandler(query *application.CatalogQueryService) *Handler {
	return &Handler{query: query}
}

// RegisterRoutes 注册路由，目录接口全部公开
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/menu", h.ListProducts)
	r.GET("/menu/:id", h.GetProduct)
	r.GET("/categories", h.ListCategories)
}

// ListProducts 列出商品，支持 ?category= 过滤
func (h *Handler) ListProducts(c *gin.Context) {
	products, err := h.query.ListProducts(c.Request.Context(), c.Query("category"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, products)
}

// GetProduct 查询单个商品
func (h *Handler) GetProduct(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.ErrorWithStatus(c, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.query.GetProduct(c.Request.Context(), uint(id))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, product)
}

// ListCategories 列出全部分类
func (h *Handler) ListCategories(c *gin.Context) {
	categories, err := h.query.ListCategories(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, categories)
}
