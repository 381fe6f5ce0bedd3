package repo

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"ecommerce-services/internal/domain"
)

func TestTranslateWriteErr(t *testing.T) {
	assert.NoError(t, translateWriteErr(nil))
	assert.ErrorIs(t, translateWriteErr(gorm.ErrDuplicatedKey), domain.ErrDuplicateKey)
	assert.ErrorIs(t, translateWriteErr(fmt.Errorf("wrap: %w", gorm.ErrDuplicatedKey)), domain.ErrDuplicateKey)
	assert.ErrorIs(t, translateWriteErr(errors.New(`ERROR: duplicate key value violates unique constraint "idx_users_email"`)), domain.ErrDuplicateKey)

	other := errors.New("connection reset")
	assert.Same(t, other, translateWriteErr(other))
}

func TestLikeContains(t *testing.T) {
	assert.Equal(t, "%lap%", likeContains("LAP"))
	assert.Equal(t, `%100\%%`, likeContains("100%"))
	assert.Equal(t, `%a\_b%`, likeContains("a_b"))
	assert.Equal(t, "%%", likeContains(""))
}

func TestProductModelRoundTrip(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	p := domain.Product{
		ID: "p1", SKU: "LAP-001", Name: "Laptop", Price: decimal.RequireFromString("999.99"),
		Stock: 3, Category: "Electronics", CreatedAt: now, UpdatedAt: now,
	}
	back := productToModel(&p).toDomain()
	assert.Equal(t, p.SKU, back.SKU)
	assert.True(t, p.Price.Equal(back.Price))
	assert.Equal(t, p.CreatedAt, back.CreatedAt)
}
