// Package application 编排订单用例：下单与查询。
package application

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/order/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
	"github.com/wyfcoding/foodordering/pkg/logger"
)

// OrderItemInput 下单行项输入
type OrderItemInput struct {
	ProductID uint
	Quantity  int
	Price     decimal.Decimal
}

// PlaceOrderCommand 下单命令
type PlaceOrderCommand struct {
	UserID        uint
	Items         []OrderItemInput
	Total         decimal.Decimal
	Address       string
	Phone         string
	PaymentMethod string
	Notes         string
}

// OrderCommandService 订单命令服务
type OrderCommandService struct {
	repo   domain.OrderRepository
	placed prometheus.Counter
}

// NewOrderCommandService 创建订单命令服务实例
func NewOrderCommandService(repo domain.OrderRepository) *OrderCommandService {
	return &OrderCommandService{repo: repo}
}

// WithPlacedCounter 注入下单成功计数器
func (s *OrderCommandService) WithPlacedCounter(c prometheus.Counter) *OrderCommandService {
	s.placed = c
	return s
}

// PlaceOrder 处理下单：校验、生成订单号、事务内持久化，返回订单号。
func (s *OrderCommandService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (string, error) {
	if len(cmd.Items) == 0 || cmd.Total.IsZero() || cmd.Address == "" || cmd.Phone == "" || cmd.PaymentMethod == "" {
		return "", apperr.Validation("Invalid order data")
	}

	// 合计以客户端提交值为准（与既有前端的契约）；
	// 与行项重算结果不一致时记录告警，便于审计。已知完整性风险。
	computed := decimal.Zero
	for _, item := range cmd.Items {
		computed = computed.Add(item.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	if !computed.Equal(cmd.Total) {
		logger.Warn(ctx, "order total mismatch",
			"user_id", cmd.UserID,
			"client_total", cmd.Total.String(),
			"computed_total", computed.String(),
		)
	}

	order := &domain.Order{
		ID:            domain.NewOrderID(),
		UserID:        cmd.UserID,
		Total:         cmd.Total,
		Status:        domain.OrderStatusPreparing,
		Address:       cmd.Address,
		Phone:         cmd.Phone,
		PaymentMethod: cmd.PaymentMethod,
		Notes:         cmd.Notes,
	}
	for _, item := range cmd.Items {
		order.Items = append(order.Items, domain.OrderItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			Price:     item.Price,
		})
	}

	if err := s.repo.Create(ctx, order); err != nil {
		return "", apperr.Internal("An error occurred while placing the order", err)
	}

	if s.placed != nil {
		s.placed.Inc()
	}
	logger.Info(ctx, "order placed", "order_id", order.ID, "user_id", cmd.UserID, "items", len(order.Items))
	return order.ID, nil
}

// OrderQueryService 订单查询服务
type OrderQueryService struct {
	repo domain.OrderRepository
}

// NewOrderQueryService 创建订单查询服务实例
func NewOrderQueryService(repo domain.OrderRepository) *OrderQueryService {
	return &OrderQueryService{repo: repo}
}

// ListOrders 返回用户自己的订单，最新在前，行项已聚合
func (s *OrderQueryService) ListOrders(ctx context.Context, userID uint) ([]*domain.Order, error) {
	orders, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching orders", err)
	}
	return orders, nil
}

// GetOrder 返回用户自己的单个订单。
// 订单不存在与不属于该用户返回同一 NotFound，避免泄露他人订单的存在性。
func (s *OrderQueryService) GetOrder(ctx context.Context, userID uint, orderID string) (*domain.Order, error) {
	order, err := s.repo.GetByUser(ctx, orderID, userID)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching the order", err)
	}
	if order == nil {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}
