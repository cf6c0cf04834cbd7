// Package mysql 提供后台管理仓储接口的 MySQL GORM 实现。
// 复用各上下文的表结构模型，做跨表联查。
package mysql

import (
	"context"
	"errors"
	"fmt"

	authmysql "github.com/wyfcoding/foodordering/internal/auth/infrastructure/persistence/mysql"
	"github.com/wyfcoding/foodordering/internal/admin/domain"
	catalogmysql "github.com/wyfcoding/foodordering/internal/catalog/infrastructure/persistence/mysql"
	orderdomain "github.com/wyfcoding/foodordering/internal/order/domain"
	ordermysql "github.com/wyfcoding/foodordering/internal/order/infrastructure/persistence/mysql"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"gorm.io/gorm"
)

// customerOrderRow 订单与客户信息的联查结果
type customerOrderRow struct {
	ordermysql.OrderModel
	CustomerName  string
	CustomerEmail string
}

// orderItemRow 行项与商品名/图的联查结果
type orderItemRow struct {
	ordermysql.OrderItemModel
	ProductName string
	Image       string
}

type adminRepositoryImpl struct {
	db *gorm.DB
}

// NewAdminRepository 创建后台管理仓储实例
func NewAdminRepository(db *gorm.DB) domain.Repository {
	return &adminRepositoryImpl{db: db}
}

// ListOrders 实现 domain.Repository.ListOrders
func (r *adminRepositoryImpl) ListOrders(ctx context.Context, status string) ([]*domain.CustomerOrder, error) {
	var rows []customerOrderRow
	q := r.db.WithContext(ctx).Model(&ordermysql.OrderModel{}).
		Select("orders.*, users.name AS customer_name, users.email AS customer_email").
		Joins("JOIN users ON orders.user_id = users.id")
	if status != "" {
		q = q.Where("orders.status = ?", status)
	}
	if err := q.Order("orders.created_at desc").Scan(&rows).Error; err != nil {
		logger.Error(ctx, "admin_repository.list_orders failed", "status", status, "error", err)
		return nil, fmt.Errorf("failed to list orders: %w", err)
	}
	if len(rows) == 0 {
		return []*domain.CustomerOrder{}, nil
	}

	ids := make([]string, len(rows))
	for i, row := range rows {
		ids[i] = row.ID
	}

	var itemRows []orderItemRow
	err := r.db.WithContext(ctx).Model(&ordermysql.OrderItemModel{}).
		Select("order_items.*, products.name AS product_name, products.image AS image").
		Joins("JOIN products ON order_items.product_id = products.id").
		Where("order_items.order_id IN ?", ids).
		Scan(&itemRows).Error
	if err != nil {
		logger.Error(ctx, "admin_repository.list_order_items failed", "error", err)
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}

	itemsByOrder := make(map[string][]orderdomain.OrderItem)
	for _, row := range itemRows {
		itemsByOrder[row.OrderID] = append(itemsByOrder[row.OrderID], orderdomain.OrderItem{
			ID:          row.ID,
			OrderID:     row.OrderID,
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Image:       row.Image,
			Quantity:    row.Quantity,
			Price:       row.Price,
		})
	}

	orders := make([]*domain.CustomerOrder, len(rows))
	for i, row := range rows {
		items := itemsByOrder[row.ID]
		if items == nil {
			items = []orderdomain.OrderItem{}
		}
		orders[i] = &domain.CustomerOrder{
			Order: orderdomain.Order{
				ID:            row.ID,
				UserID:        row.UserID,
				Total:         row.Total,
				Status:        orderdomain.OrderStatus(row.Status),
				Address:       row.Address,
				Phone:         row.Phone,
				PaymentMethod: row.PaymentMethod,
				Notes:         row.Notes,
				CreatedAt:     row.CreatedAt,
				Items:         items,
			},
			CustomerName:  row.CustomerName,
			CustomerEmail: row.CustomerEmail,
		}
	}
	return orders, nil
}

// UpdateOrderStatus 实现 domain.Repository.UpdateOrderStatus。
// MySQL 的 UPDATE 对同值写入报告 0 行受影响，存在性单独确认。
func (r *adminRepositoryImpl) UpdateOrderStatus(ctx context.Context, orderID, status string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&ordermysql.OrderModel{}).Where("id = ?", orderID).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check order: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&ordermysql.OrderModel{}).
		Where("id = ?", orderID).
		Update("status", status).Error
	if err != nil {
		logger.Error(ctx, "admin_repository.update_order_status failed", "order_id", orderID, "error", err)
		return false, fmt.Errorf("failed to update order status: %w", err)
	}
	return true, nil
}

// ListUsers 实现 domain.Repository.ListUsers
func (r *adminRepositoryImpl) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	var models []authmysql.UserModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		logger.Error(ctx, "admin_repository.list_users failed", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]*domain.UserSummary, len(models))
	for i, m := range models {
		users[i] = &domain.UserSummary{
			ID:        m.ID,
			Name:      m.Name,
			Email:     m.Email,
			Phone:     m.Phone,
			Role:      m.Role,
			CreatedAt: m.CreatedAt,
		}
	}
	return users, nil
}

// CreateProduct 实现 domain.Repository.CreateProduct
func (r *adminRepositoryImpl) CreateProduct(ctx context.Context, input domain.ProductInput) (uint, error) {
	model := &catalogmysql.ProductModel{
		Name:        input.Name,
		Description: input.Description,
		Price:       input.Price,
		Image:       input.Image,
		CategoryID:  input.CategoryID,
		IsFeatured:  input.IsFeatured,
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		logger.Error(ctx, "admin_repository.create_product failed", "name", input.Name, "error", err)
		return 0, fmt.Errorf("failed to create product: %w", err)
	}
	return model.ID, nil
}

// UpdateProduct 实现 domain.Repository.UpdateProduct
func (r *adminRepositoryImpl) UpdateProduct(ctx context.Context, id uint, input domain.ProductInput) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&catalogmysql.ProductModel{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check product: %w", err)
	}
	if count == 0 {
		return false, nil
	}

	err := r.db.WithContext(ctx).Model(&catalogmysql.ProductModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"name":        input.Name,
			"description": input.Description,
			"price":       input.Price,
			"image":       input.Image,
			"category_id": input.CategoryID,
			"is_featured": input.IsFeatured,
		}).Error
	if err != nil {
		logger.Error(ctx, "admin_repository.update_product failed", "product_id", id, "error", err)
		return false, fmt.Errorf("failed to update product: %w", err)
	}
	return true, nil
}

// ProductReferenced 实现 domain.Repository.ProductReferenced
func (r *adminRepositoryImpl) ProductReferenced(ctx context.Context, productID uint) (bool, error) {
	var item ordermysql.OrderItemModel
	err := r.db.WithContext(ctx).
		Select("id").
		Where("product_id = ?", productID).
		First(&item).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		logger.Error(ctx, "admin_repository.product_referenced failed", "product_id", productID, "error", err)
		return false, fmt.Errorf("failed to check product references: %w", err)
	}
	return true, nil
}

// DeleteProduct 实现 domain.Repository.DeleteProduct
func (r *adminRepositoryImpl) DeleteProduct(ctx context.Context, productID uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&catalogmysql.ProductModel{}, productID)
	if res.Error != nil {
		logger.Error(ctx, "admin_repository.delete_product failed", "product_id", productID, "error", res.Error)
		return false, fmt.Errorf("failed to delete product: %w", res.Error)
	}
	return res.RowsAffected > 0, nil
}
