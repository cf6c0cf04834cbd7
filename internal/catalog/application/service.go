// Package application 编排商品目录的查询用例。
package application

import (
	"context"

	"github.com/wyfcoding/foodordering/internal/catalog/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
)

// CatalogQueryService 商品目录查询服务。纯过滤读取，无分页、无缓存。
type CatalogQueryService struct {
	repo domain.ProductRepository
}

// NewCatalogQueryService 创建查询服务实例
func NewCatalogQueryService(repo domain.ProductRepository) *CatalogQueryService {
	return &CatalogQueryService{repo: repo}
}

// ListProducts 列出商品，category 非空时按分类名过滤
func (s *CatalogQueryService) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	products, err := s.repo.ListProducts(ctx, category)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching menu items", err)
	}
	return products, nil
}

// GetProduct 查询单个商品
func (s *CatalogQueryService) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching the product", err)
	}
	if product == nil {
		return nil, apperr.NotFound("Product not found")
	}
	return product, nil
}

// ListCategories 列出全部分类
func (s *CatalogQueryService) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	categories, err := s.repo.ListCategories(ctx)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching categories", err)
	}
	return categories, nil
}
