package domain

import "context"

// OrderRepository 订单仓储接口
type OrderRepository interface {
	// Create 在单个事务内持久化订单头与全部行项：要么全部提交，要么全部回滚。
	Create(ctx context.Context, order *Order) error
	// ListByUser 返回用户的全部订单，按创建时间倒序，行项已聚合。
	ListByUser(ctx context.Context, userID uint) ([]*Order, error)
	// GetByUser 按订单号与归属用户联合查找；不存在或不属于该用户均返回 (nil, nil)。
	GetByUser(ctx context.Context, orderID string, userID uint) (*Order, error)
}
