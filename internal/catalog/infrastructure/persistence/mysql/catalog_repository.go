// Package mysql 提供商品目录仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/wyfcoding/foodordering/internal/catalog/domain"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"gorm.io/gorm"
)

// CategoryModel 分类数据库模型，直接映射 categories 表。
type CategoryModel struct {
	ID   uint   `gorm:"primaryKey;autoIncrement"`
	Name string `gorm:"column:name;type:varchar(100);not null"`
}

// TableName 指定表名
func (CategoryModel) TableName() string { return "categories" }

// ProductModel 商品数据库模型，直接映射 products 表。
type ProductModel struct {
	ID          uint            `gorm:"primaryKey;autoIncrement"`
	Name        string          `gorm:"column:name;type:varchar(255);not null"`
	Description string          `gorm:"column:description;type:text"`
	Price       decimal.Decimal `gorm:"column:price;type:decimal(10,2);not null"`
	Image       string          `gorm:"column:image;type:varchar(255)"`
	CategoryID  uint            `gorm:"column:category_id;index;not null"`
	IsFeatured  bool            `gorm:"column:is_featured;not null;default:false"`
	CreatedAt   time.Time       `gorm:"column:created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at"`
}

// TableName 指定表名
func (ProductModel) TableName() string { return "products" }

// productRow 商品与分类名的联查结果
type productRow struct {
	ProductModel
	CategoryName string
}

type catalogRepositoryImpl struct {
	db *gorm.DB
}

// NewCatalogRepository 创建商品目录仓储实例
func NewCatalogRepository(db *gorm.DB) domain.ProductRepository {
	return &catalogRepositoryImpl{db: db}
}

// ListProducts 实现 domain.ProductRepository.ListProducts
func (r *catalogRepositoryImpl) ListProducts(ctx context.Context, category string) ([]*domain.Product, error) {
	var rows []productRow
	q := r.db.WithContext(ctx).Model(&ProductModel{}).
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON products.category_id = categories.id")
	if category != "" {
		q = q.Where("categories.name = ?", category)
	}
	if err := q.Scan(&rows).Error; err != nil {
		logger.Error(ctx, "catalog_repository.list_products failed", "category", category, "error", err)
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*domain.Product, len(rows))
	for i, row := range rows {
		products[i] = toDomainProduct(&row)
	}
	return products, nil
}

// GetProduct 实现 domain.ProductRepository.GetProduct
func (r *catalogRepositoryImpl) GetProduct(ctx context.Context, id uint) (*domain.Product, error) {
	var row productRow
	err := r.db.WithContext(ctx).Model(&ProductModel{}).
		Select("products.*, categories.name AS category_name").
		Joins("JOIN categories ON products.category_id = categories.id").
		Where("products.id = ?", id).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "catalog_repository.get_product failed", "product_id", id, "error", err)
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return toDomainProduct(&row), nil
}

// ListCategories 实现 domain.ProductRepository.ListCategories
func (r *catalogRepositoryImpl) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	var models []CategoryModel
	if err := r.db.WithContext(ctx).Find(&models).Error; err != nil {
		logger.Error(ctx, "catalog_repository.list_categories failed", "error", err)
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := make([]*domain.Category, len(models))
	for i, m := range models {
		categories[i] = &domain.Category{ID: m.ID, Name: m.Name}
	}
	return categories, nil
}

func toDomainProduct(row *productRow) *domain.Product {
	return &domain.Product{
		ID:           row.ID,
		Name:         row.Name,
		Description:  row.Description,
		Price:        row.Price,
		Image:        row.Image,
		CategoryID:   row.CategoryID,
		CategoryName: row.CategoryName,
		IsFeatured:   row.IsFeatured,
		CreatedAt:    row.CreatedAt,
	}
}
