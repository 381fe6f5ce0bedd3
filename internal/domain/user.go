package domain

import (
	"context"
	"time"
)

// User 存储形态；FullName 之类的派生字段不在这里
type User struct {
	ID        string
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// UserRepository 持久化适配器。Find* 查不到时返回 (nil, nil)。
// Save 在唯一索引冲突时返回 ErrDuplicateKey。
type UserRepository interface {
	Save(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	ExistsByID(ctx context.Context, id string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	DeleteByID(ctx context.Context, id string) error
	FindAll(ctx context.Context) ([]User, error)
}
