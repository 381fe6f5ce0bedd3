package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal
	Stock       int
	Category    string
	ImageURL    string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ProductRepository 同 UserRepository 的约定，外加几个过滤查询。
// Category 精确匹配（区分大小写）；名称搜索为不区分大小写的子串匹配，空串匹配全部。
type ProductRepository interface {
	Save(ctx context.Context, p *Product) error
	FindByID(ctx context.Context, id string) (*Product, error)
	FindBySKU(ctx context.Context, sku string) (*Product, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsBySKU(ctx context.Context, sku string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]Product, error)
	FindByCategory(ctx context.Context, category string) ([]Product, error)
	FindByNameContaining(ctx context.Context, q string) ([]Product, error)
	// FindByPriceBetween 闭区间 [min, max]
	FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]Product, error)
	FindByStockGreaterThan(ctx context.Context, min int) ([]Product, error)
}
