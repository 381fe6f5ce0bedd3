package repo

import (
	"context"

	"ecommerce-services/internal/domain"
)

type MemoryUserRepo struct{ t *memTable[domain.User] }

func NewMemoryUserRepo() *MemoryUserRepo {
	return &MemoryUserRepo{t: newMemTable(
		func(u *domain.User) *string { return &u.ID },
		func(u *domain.User) string { return u.Email },
	)}
}

func (r *MemoryUserRepo) Save(ctx context.Context, u *domain.User) error { return r.t.save(ctx, u) }

func (r *MemoryUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	return r.t.get(ctx, id)
}

func (r *MemoryUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.t.getByKey(ctx, email)
}

func (r *MemoryUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	u, err := r.t.get(ctx, id)
	return u != nil, err
}

func (r *MemoryUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	u, err := r.t.getByKey(ctx, email)
	return u != nil, err
}

func (r *MemoryUserRepo) DeleteByID(ctx context.Context, id string) error { return r.t.remove(ctx, id) }

func (r *MemoryUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	return r.t.filter(ctx, nil)
}
