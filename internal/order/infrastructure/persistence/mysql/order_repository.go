// Package mysql 提供订单仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/order/domain"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"gorm.io/gorm"
)

// OrderModel 订单数据库模型，直接映射 orders 表。
// 主键为生成的可读订单号。
type OrderModel struct {
	ID            string          `gorm:"column:id;type:varchar(20);primaryKey"`
	UserID        uint            `gorm:"column:user_id;index;not null"`
	Total         decimal.Decimal `gorm:"column:total;type:decimal(10,2);not null"`
	Status        string          `gorm:"column:status;type:varchar(20);not null;default:'preparing'"`
	Address       string          `gorm:"column:address;type:varchar(255);not null"`
	Phone         string          `gorm:"column:phone;type:varchar(20);not null"`
	PaymentMethod string          `gorm:"column:payment_method;type:varchar(20);not null"`
	Notes         string          `gorm:"column:notes;type:text"`
	CreatedAt     time.Time       `gorm:"column:created_at"`
}

// TableName 指定表名
func (OrderModel) TableName() string { return "orders" }

// OrderItemModel 订单行项数据库模型，直接映射 order_items 表。
type OrderItemModel struct {
	ID        uint            `gorm:"primaryKey;autoIncrement"`
	OrderID   string          `gorm:"column:order_id;type:varchar(20);index;not null"`
	ProductID uint            `gorm:"column:product_id;index;not null"`
	Quantity  int             `gorm:"column:quantity;not null"`
	Price     decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
}

// TableName 指定表名
func (OrderItemModel) TableName() string { return "order_items" }

// orderItemRow 行项与商品名/图的联查结果
type orderItemRow struct {
	OrderItemModel
	ProductName string
	Image       string
}

type orderRepositoryImpl struct {
	db *gorm.DB
}

// NewOrderRepository 创建订单仓储实例
func NewOrderRepository(db *gorm.DB) domain.OrderRepository {
	return &orderRepositoryImpl{db: db}
}

// Create 实现 domain.OrderRepository.Create。
// 订单头与每个行项在同一事务内写入，任一失败整体回滚，
// 连接在所有退出路径上归还连接池。
func (r *orderRepositoryImpl) Create(ctx context.Context, order *domain.Order) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		header := &OrderModel{
			ID:            order.ID,
			UserID:        order.UserID,
			Total:         order.Total,
			Status:        string(order.Status),
			Address:       order.Address,
			Phone:         order.Phone,
			PaymentMethod: order.PaymentMethod,
			Notes:         order.Notes,
		}
		if err := tx.Create(header).Error; err != nil {
			return err
		}

		for i := range order.Items {
			item := &OrderItemModel{
				ID:        order.Items[i].ID,
				OrderID:   order.ID,
				ProductID: order.Items[i].ProductID,
				Quantity:  order.Items[i].Quantity,
				Price:     order.Items[i].Price,
			}
			if err := tx.Create(item).Error; err != nil {
				return err
			}
			order.Items[i].ID = item.ID
			order.Items[i].OrderID = order.ID
		}

		order.CreatedAt = header.CreatedAt
		return nil
	})
	if err != nil {
		logger.Error(ctx, "order_repository.create failed", "order_id", order.ID, "error", err)
		return fmt.Errorf("failed to create order: %w", err)
	}
	return nil
}

// ListByUser 实现 domain.OrderRepository.ListByUser
func (r *orderRepositoryImpl) ListByUser(ctx context.Context, userID uint) ([]*domain.Order, error) {
	var models []OrderModel
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&models).Error
	if err != nil {
		logger.Error(ctx, "order_repository.list_by_user failed", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(models) == 0 {
		return []*domain.Order{}, nil
	}

	ids := make([]string, len(models))
	for i, m := range models {
		ids[i] = m.ID
	}

	itemsByOrder, err := r.loadItems(ctx, ids)
	if err != nil {
		return nil, err
	}

	orders := make([]*domain.Order, len(models))
	for i, m := range models {
		orders[i] = toDomainOrder(&m, itemsByOrder[m.ID])
	}
	return orders, nil
}

// GetByUser 实现 domain.OrderRepository.GetByUser。
// 归属校验与存在性检查合并为同一个查询，调用方无法区分两种缺失。
func (r *orderRepositoryImpl) GetByUser(ctx context.Context, orderID string, userID uint) (*domain.Order, error) {
	var model OrderModel
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", orderID, userID).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "order_repository.get_by_user failed", "order_id", orderID, "error", err)
		return nil, fmt.Errorf("failed to get order: %w", err)
	}

	itemsByOrder, err := r.loadItems(ctx, []string{model.ID})
	if err != nil {
		return nil, err
	}
	return toDomainOrder(&model, itemsByOrder[model.ID]), nil
}

// loadItems 批量加载行项并联查商品名与图片，按订单号分组。
func (r *orderRepositoryImpl) loadItems(ctx context.Context, orderIDs []string) (map[string][]domain.OrderItem, error) {
	var rows []orderItemRow
	err := r.db.WithContext(ctx).Model(&OrderItemModel{}).
		Select("order_items.*, products.name AS product_name, products.image AS image").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id IN ?", orderIDs).
		Scan(&rows).Error
	if err != nil {
		logger.Error(ctx, "order_repository.load_items failed", "error", err)
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	grouped := make(map[string][]domain.OrderItem, len(orderIDs))
	for _, row := range rows {
		grouped[row.OrderID] = append(grouped[row.OrderID], domain.OrderItem{
			ID:          row.ID,
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Image:       row.Image,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}
	return grouped, nil
}

func toDomainOrder(m *OrderModel, items []domain.OrderItem) *domain.Order {
	if items == nil {
		items = []domain.OrderItem{}
	}
	return &domain.Order{
		ID:            m.ID,
		UserID:        m.UserID,
		Total:         m.Total,
		Status:        domain.OrderStatus(m.Status),
		Address:       m.Address,
		Phone:         m.Phone,
		PaymentMethod: m.PaymentMethod,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
		Items:         items,
	}
}
