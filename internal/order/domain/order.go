// Package domain 包含订单服务的领域模型
package domain

import (
	"fmt"
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderStatusPreparing  OrderStatus = "preparing"
	OrderStatusDelivering OrderStatus = "delivering"
	OrderStatusDelivered  OrderStatus = "delivered"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus 判断状态值是否合法。
// 状态间不做状态机约束，任意状态可迁移到任意状态。
func ValidStatus(s string) bool {
	switch OrderStatus(s) {
	case OrderStatusPreparing, OrderStatusDelivering, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// OrderItem 订单行项，价格为下单时快照，与商品现价解耦。
// 随订单创建，创建后不可变。
type OrderItem struct {
	ID          uint            `json:"id"`
	OrderID     string          `json:"order_id"`
	ProductID   uint            `json:"product_id"`
	ProductName string          `json:"name,omitempty"`
	Image       string          `json:"image,omitempty"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// Order 订单聚合根。创建后仅状态可变。
type Order struct {
	ID            string          `json:"id"`
	UserID        uint            `json:"user_id"`
	Total         decimal.Decimal `json:"total"`
	Status        OrderStatus     `json:"status"`
	Address       string          `json:"address"`
	Phone         string          `json:"phone"`
	PaymentMethod string          `json:"payment_method"`
	Notes         string          `json:"notes,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []OrderItem     `json:"items"`
}

// NewOrderID 生成可读订单号：ORD- + 毫秒时间戳后 6 位 + 3 位随机数。
// 唯一性是概率性的，冲突由主键约束兜底（事务失败回滚）。
func NewOrderID() string {
	ts := strconv.FormatInt(time.Now().UnixMilli(), 10)
	return fmt.Sprintf("ORD-%s%03d", ts[len(ts)-6:], rand.IntN(1000))
}
