package repo

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"ecommerce-services/internal/domain"
)

type MemoryProductRepo struct{ t *memTable[domain.Product] }

func NewMemoryProductRepo() *MemoryProductRepo {
	return &MemoryProductRepo{t: newMemTable(
		func(p *domain.Product) *string { return &p.ID },
		func(p *domain.Product) string { return p.SKU },
	)}
}

func (r *MemoryProductRepo) Save(ctx context.Context, p *domain.Product) error {
	return r.t.save(ctx, p)
}

func (r *MemoryProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.t.get(ctx, id)
}

func (r *MemoryProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.t.getByKey(ctx, sku)
}

func (r *MemoryProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	p, err := r.t.get(ctx, id)
	return p != nil, err
}

func (r *MemoryProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	p, err := r.t.getByKey(ctx, sku)
	return p != nil, err
}

func (r *MemoryProductRepo) DeleteByID(ctx context.Context, id string) error {
	return r.t.remove(ctx, id)
}

func (r *MemoryProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.t.filter(ctx, nil)
}

func (r *MemoryProductRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.t.filter(ctx, func(p *domain.Product) bool { return p.Category == category })
}

func (r *MemoryProductRepo) FindByNameContaining(ctx context.Context, q string) ([]domain.Product, error) {
	q = strings.ToLower(q)
	return r.t.filter(ctx, func(p *domain.Product) bool {
		return strings.Contains(strings.ToLower(p.Name), q)
	})
}

func (r *MemoryProductRepo) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error) {
	return r.t.filter(ctx, func(p *domain.Product) bool {
		return p.Price.GreaterThanOrEqual(min) && p.Price.LessThanOrEqual(max)
	})
}

func (r *MemoryProductRepo) FindByStockGreaterThan(ctx context.Context, min int) ([]domain.Product, error) {
	return r.t.filter(ctx, func(p *domain.Product) bool { return p.Stock > min })
}
