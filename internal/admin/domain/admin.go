// Package domain 包含后台管理的领域模型与仓储接口。
// 后台视图跨越用户/商品/订单三张表，持有自己的读模型。
package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	orderdomain "github.com/wyfcoding/foodordering/internal/order/domain"
)

// CustomerOrder 带客户信息的订单视图
type CustomerOrder struct {
	orderdomain.Order
	CustomerName  string `json:"customer_name"`
	CustomerEmail string `json:"customer_email"`
}

// UserSummary 用户公开字段
type UserSummary struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// ProductInput 商品写入字段
type ProductInput struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  uint
	IsFeatured  bool
}

// Repository 后台管理仓储接口
type Repository interface {
	// ListOrders 列出全部订单（含客户名/邮箱与行项），status 非空时过滤
	ListOrders(ctx context.Context, status string) ([]*CustomerOrder, error)
	// UpdateOrderStatus 更新订单状态，订单不存在时返回 (false, nil)
	UpdateOrderStatus(ctx context.Context, orderID, status string) (bool, error)
	// ListUsers 列出全部用户的公开字段
	ListUsers(ctx context.Context) ([]*UserSummary, error)
	// CreateProduct 新增商品，返回商品 ID
	CreateProduct(ctx context.Context, input ProductInput) (uint, error)
	// UpdateProduct 更新商品，商品不存在时返回 (false, nil)
	UpdateProduct(ctx context.Context, id uint, input ProductInput) (bool, error)
	// ProductReferenced 判断商品是否被任一订单行项引用
	ProductReferenced(ctx context.Context, productID uint) (bool, error)
	// DeleteProduct 删除商品，商品不存在时返回 (false, nil)
	DeleteProduct(ctx context.Context, productID uint) (bool, error)
}
