package repo

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecommerce-services/internal/domain"
)

// 每个适配器都要跑一遍同样的用例

func runUserRepoContract(t *testing.T, r domain.UserRepository) {
	ctx := context.Background()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	u := domain.User{FirstName: "Ada", LastName: "Lovelace", Email: "ada@x.io", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, r.Save(ctx, &u))
	require.NotEmpty(t, u.ID)

	got, err := r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "ada@x.io", got.Email)
	assert.True(t, got.CreatedAt.Equal(now))

	byEmail, err := r.FindByEmail(ctx, "ada@x.io")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Equal(t, u.ID, byEmail.ID)

	ok, err := r.ExistsByEmail(ctx, "ada@x.io")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = r.ExistsByID(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	dup := domain.User{FirstName: "Other", LastName: "Ada", Email: "ada@x.io", CreatedAt: now, UpdatedAt: now}
	err = r.Save(ctx, &dup)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey), "got %v", err)

	// 同 id 覆盖写
	u.LastName = "King"
	u.UpdatedAt = now.Add(time.Minute)
	require.NoError(t, r.Save(ctx, &u))
	got, err = r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "King", got.LastName)

	all, err := r.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	require.NoError(t, r.DeleteByID(ctx, u.ID))
	got, err = r.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
	ok, err = r.ExistsByEmail(ctx, "ada@x.io")
	require.NoError(t, err)
	assert.False(t, ok)

	missing, err := r.FindByEmail(ctx, "nobody@x.io")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func runProductRepoContract(t *testing.T, r domain.ProductRepository) {
	ctx := context.Background()
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	mk := func(sku, name, category, price string, stock int) domain.Product {
		return domain.Product{
			SKU: sku, Name: name, Category: category, Stock: stock,
			Price: decimal.RequireFromString(price), CreatedAt: now, UpdatedAt: now,
		}
	}

	items := []domain.Product{
		mk("LAP-001", "Laptop", "Electronics", "999.99", 50),
		mk("MOU-001", "Wireless Mouse", "Electronics", "19.90", 0),
		mk("BK-001", "The Go Programming Language", "Books", "39.90", 7),
	}
	for i := range items {
		require.NoError(t, r.Save(ctx, &items[i]))
		require.NotEmpty(t, items[i].ID)
	}

	got, err := r.FindBySKU(ctx, "LAP-001")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("999.99")), "price %s", got.Price)

	dup := mk("LAP-001", "Clone", "Electronics", "1", 1)
	err = r.Save(ctx, &dup)
	assert.True(t, errors.Is(err, domain.ErrDuplicateKey), "got %v", err)

	byCat, err := r.FindByCategory(ctx, "Electronics")
	require.NoError(t, err)
	assert.Len(t, byCat, 2)
	byCat, err = r.FindByCategory(ctx, "electronics")
	require.NoError(t, err)
	assert.Empty(t, byCat)

	byName, err := r.FindByNameContaining(ctx, "MOUSE")
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "MOU-001", byName[0].SKU)
	byName, err = r.FindByNameContaining(ctx, "")
	require.NoError(t, err)
	assert.Len(t, byName, 3)
	byName, err = r.FindByNameContaining(ctx, "100%")
	require.NoError(t, err)
	assert.Empty(t, byName)

	// 区间两端都包含
	byPrice, err := r.FindByPriceBetween(ctx, decimal.RequireFromString("19.90"), decimal.RequireFromString("39.90"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"MOU-001", "BK-001"}, skus(byPrice))

	byStock, err := r.FindByStockGreaterThan(ctx, 0)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"LAP-001", "BK-001"}, skus(byStock))
	byStock, err = r.FindByStockGreaterThan(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, []string{"LAP-001"}, skus(byStock))

	require.NoError(t, r.DeleteByID(ctx, items[0].ID))
	ok, err := r.ExistsByID(ctx, items[0].ID)
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = r.ExistsBySKU(ctx, "LAP-001")
	require.NoError(t, err)
	assert.False(t, ok)
}

func skus(ps []domain.Product) []string {
	out := make([]string, 0, len(ps))
	for _, p := range ps {
		out = append(out, p.SKU)
	}
	return out
}

func productFixture(sku, name string) domain.Product {
	now := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)
	return domain.Product{
		SKU: sku, Name: name, Category: "Misc", Stock: 1,
		Price: decimal.RequireFromString("9.99"), CreatedAt: now, UpdatedAt: now,
	}
}
