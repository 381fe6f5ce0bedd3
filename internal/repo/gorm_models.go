package repo

import (
	"time"

	"github.com/shopspring/decimal"

	"ecommerce-services/internal/domain"
)

// 时间戳由 service 写入，关闭 gorm 的自动维护
type UserModel struct {
	ID        string    `gorm:"primaryKey;type:varchar(36)"`
	FirstName string    `gorm:"size:100;not null"`
	LastName  string    `gorm:"size:100;not null"`
	Email     string    `gorm:"uniqueIndex:idx_users_email;size:255;not null"`
	Phone     string    `gorm:"size:10"`
	Address   string    `gorm:"size:512"`
	CreatedAt time.Time `gorm:"autoCreateTime:false;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime:false;not null"`
}

func (UserModel) TableName() string { return "users" }

type ProductModel struct {
	ID          string          `gorm:"primaryKey;type:varchar(36)"`
	SKU         string          `gorm:"column:sku;uniqueIndex:idx_products_sku;size:64;not null"`
	Name        string          `gorm:"size:255;not null"`
	Description string          `gorm:"type:text"`
	Price       decimal.Decimal `gorm:"type:decimal(19,4);not null"`
	Stock       int             `gorm:"not null;default:0"`
	Category    string          `gorm:"index:idx_products_category;size:128;not null"`
	ImageURL    string          `gorm:"column:image_url;size:1024"`
	CreatedAt   time.Time       `gorm:"autoCreateTime:false;not null"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime:false;not null"`
}

func (ProductModel) TableName() string { return "products" }

// Models AutoMigrate 用
func Models() []any { return []any{&UserModel{}, &ProductModel{}} }

func userToModel(u *domain.User) *UserModel {
	return &UserModel{
		ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Email: u.Email,
		Phone: u.Phone, Address: u.Address, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
}

func (m *UserModel) toDomain() domain.User {
	return domain.User{
		ID: m.ID, FirstName: m.FirstName, LastName: m.LastName, Email: m.Email,
		Phone: m.Phone, Address: m.Address, CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}

func productToModel(p *domain.Product) *ProductModel {
	return &ProductModel{
		ID: p.ID, SKU: p.SKU, Name: p.Name, Description: p.Description, Price: p.Price,
		Stock: p.Stock, Category: p.Category, ImageURL: p.ImageURL,
		CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
}

func (m *ProductModel) toDomain() domain.Product {
	return domain.Product{
		ID: m.ID, SKU: m.SKU, Name: m.Name, Description: m.Description, Price: m.Price,
		Stock: m.Stock, Category: m.Category, ImageURL: m.ImageURL,
		CreatedAt: m.CreatedAt, UpdatedAt: m.UpdatedAt,
	}
}
