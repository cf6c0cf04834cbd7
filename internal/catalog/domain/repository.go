package domain

import "context"

// ProductRepository 商品目录仓储接口（只读）
type ProductRepository interface {
	// ListProducts 列出全部商品，category 非空时按分类名称过滤
	ListProducts(ctx context.Context, category string) ([]*Product, error)
	// GetProduct 按 ID 查找，不存在时返回 (nil, nil)
	GetProduct(ctx context.Context, id uint) (*Product, error)
	// ListCategories 列出全部分类
	ListCategories(ctx context.Context) ([]*Category, error)
}
