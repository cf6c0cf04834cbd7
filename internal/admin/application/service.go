// Package application 实现后台管理的应用服务。
// 所有操作均以管理员身份执行，角色校验由接口层中间件完成。
package application

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/admin/domain"
	orderdomain "github.com/wyfcoding/foodordering/internal/order/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
	"github.com/wyfcoding/foodordering/pkg/logger"
)

// AdminService 后台管理应用服务
type AdminService struct {
	repo domain.Repository
}

// NewAdminService 创建后台管理应用服务
func NewAdminService(repo domain.Repository) *AdminService {
	return &AdminService{repo: repo}
}

// ProductCommand 商品创建/更新命令
type ProductCommand struct {
	Name        string
	Description string
	Price       decimal.Decimal
	Image       string
	CategoryID  uint
	IsFeatured  bool
}

// ListAllOrders 列出全部订单，status 非空时按状态过滤
func (s *AdminService) ListAllOrders(ctx context.Context, status string) ([]*domain.CustomerOrder, error) {
	if status != "" && !orderdomain.ValidStatus(status) {
		return nil, apperr.Validation("Invalid status")
	}
	return s.repo.ListOrders(ctx, status)
}

// UpdateOrderStatus 更新订单状态
func (s *AdminService) UpdateOrderStatus(ctx context.Context, orderID, status string) error {
	if !orderdomain.ValidStatus(status) {
		return apperr.Validation("Invalid status")
	}
	found, err := s.repo.UpdateOrderStatus(ctx, orderID, status)
	if err != nil {
		return apperr.Internal("Failed to update order status", err)
	}
	if !found {
		return apperr.NotFound("Order not found")
	}
	logger.Info(ctx, "order status updated", "order_id", orderID, "status", status)
	return nil
}

// ListUsers 列出全部用户的公开字段
func (s *AdminService) ListUsers(ctx context.Context) ([]*domain.UserSummary, error) {
	return s.repo.ListUsers(ctx)
}

// CreateProduct 新增商品，返回商品 ID
func (s *AdminService) CreateProduct(ctx context.Context, cmd ProductCommand) (uint, error) {
	if err := validateProduct(cmd); err != nil {
		return 0, err
	}
	id, err := s.repo.CreateProduct(ctx, toProductInput(cmd))
	if err != nil {
		return 0, apperr.Internal("Failed to create product", err)
	}
	logger.Info(ctx, "product created", "product_id", id, "name", cmd.Name)
	return id, nil
}

// UpdateProduct 更新商品
func (s *AdminService) UpdateProduct(ctx context.Context, id uint, cmd ProductCommand) error {
	if err := validateProduct(cmd); err != nil {
		return err
	}
	found, err := s.repo.UpdateProduct(ctx, id, toProductInput(cmd))
	if err != nil {
		return apperr.Internal("Failed to update product", err)
	}
	if !found {
		return apperr.NotFound("Product not found")
	}
	logger.Info(ctx, "product updated", "product_id", id)
	return nil
}

// DeleteProduct 删除商品。被订单引用的商品拒绝删除，保护历史订单的行项完整性。
func (s *AdminService) DeleteProduct(ctx context.Context, id uint) error {
	referenced, err := s.repo.ProductReferenced(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to delete product", err)
	}
	if referenced {
		return apperr.Conflict("Cannot delete product as it is associated with orders")
	}
	found, err := s.repo.DeleteProduct(ctx, id)
	if err != nil {
		return apperr.Internal("Failed to delete product", err)
	}
	if !found {
		return apperr.NotFound("Product not found")
	}
	logger.Info(ctx, "product deleted", "product_id", id)
	return nil
}

func validateProduct(cmd ProductCommand) error {
	if cmd.Name == "" || cmd.Price.IsZero() || cmd.CategoryID == 0 {
		return apperr.Validation("Name, price, and category are required")
	}
	return nil
}

func toProductInput(cmd ProductCommand) domain.ProductInput {
	return domain.ProductInput{
		Name:        cmd.Name,
		Description: cmd.Description,
		Price:       cmd.Price,
		Image:       cmd.Image,
		CategoryID:  cmd.CategoryID,
		IsFeatured:  cmd.IsFeatured,
	}
}
