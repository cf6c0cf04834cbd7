// Package domain 包含商品目录的领域模型
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category 商品分类，静态参考数据
type Category struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// Product 商品实体，读取时携带分类名称
type Product struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Price        decimal.Decimal `json:"price"`
	Image        string          `json:"image"`
	CategoryID   uint            `json:"category_id"`
	CategoryName string          `json:"category_name"`
	IsFeatured   bool            `json:"is_featured"`
	CreatedAt    time.Time       `json:"created_at"`
}
