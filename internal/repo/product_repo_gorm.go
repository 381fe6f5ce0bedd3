package repo

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"ecommerce-services/internal/domain"
)

type GormProductRepo struct{ db *gorm.DB }

func NewGormProductRepo(db *gorm.DB) *GormProductRepo { return &GormProductRepo{db: db} }

func (r *GormProductRepo) Save(ctx context.Context, p *domain.Product) error {
	m := productToModel(p)
	var err error
	if m.ID == "" {
		m.ID = uuid.NewString()
		err = r.db.WithContext(ctx).Create(m).Error
	} else {
		err = r.db.WithContext(ctx).Save(m).Error
	}
	if err = translateWriteErr(err); err != nil {
		return err
	}
	p.ID = m.ID
	return nil
}

func (r *GormProductRepo) first(ctx context.Context, query string, arg any) (*domain.Product, error) {
	var m ProductModel
	err := r.db.WithContext(ctx).Where(query, arg).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p := m.toDomain()
	return &p, nil
}

func (r *GormProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	return r.first(ctx, "id = ?", id)
}

func (r *GormProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.first(ctx, "sku = ?", sku)
}

func (r *GormProductRepo) exists(ctx context.Context, query string, arg any) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&ProductModel{}).Where(query, arg).Limit(1).Count(&n).Error
	return n > 0, err
}

func (r *GormProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	return r.exists(ctx, "id = ?", id)
}

func (r *GormProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return r.exists(ctx, "sku = ?", sku)
}

func (r *GormProductRepo) DeleteByID(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&ProductModel{}).Error
}

func (r *GormProductRepo) find(ctx context.Context, scope func(*gorm.DB) *gorm.DB) ([]domain.Product, error) {
	var ms []ProductModel
	q := r.db.WithContext(ctx).Model(&ProductModel{})
	if scope != nil {
		q = scope(q)
	}
	if err := q.Order("created_at").Find(&ms).Error; err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(ms))
	for i := range ms {
		out = append(out, ms[i].toDomain())
	}
	return out, nil
}

func (r *GormProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, nil)
}

// FindByCategory 精确匹配，区分大小写；MySQL 默认 collation 不区分，按二进制比较
func (r *GormProductRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	cond := "category = ?"
	if r.db.Dialector.Name() == "mysql" {
		cond = "BINARY category = ?"
	}
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Where(cond, category) })
}

func (r *GormProductRepo) FindByNameContaining(ctx context.Context, s string) ([]domain.Product, error) {
	if s == "" {
		return r.find(ctx, nil)
	}
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("LOWER(name) LIKE ?", likeContains(s)) })
}

func (r *GormProductRepo) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("price BETWEEN ? AND ?", min, max) })
}

func (r *GormProductRepo) FindByStockGreaterThan(ctx context.Context, min int) ([]domain.Product, error) {
	return r.find(ctx, func(q *gorm.DB) *gorm.DB { return q.Where("stock > ?", min) })
}
