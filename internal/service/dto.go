package service

import (
	"time"

	"github.com/shopspring/decimal"
)

// 请求体校验规则写在 binding 标签里，消息见 FieldMessages。
// notblank / phone10 / money 为自定义规则，在 ez 包注册。

type UserRequest struct {
	FirstName string `json:"firstName" binding:"notblank"`
	LastName  string `json:"lastName" binding:"notblank"`
	Email     string `json:"email" binding:"notblank,email"`
	Phone     string `json:"phone" binding:"omitempty,phone10"`
	Address   string `json:"address"`
}

func (UserRequest) FieldMessages() map[string]string {
	return map[string]string{
		"firstName.notblank": "First name is required",
		"lastName.notblank":  "Last name is required",
		"email.notblank":     "Email is required",
		"email.email":        "Email must be valid",
		"phone.phone10":      "Phone must be 10 digits",
	}
}

type UserResponse struct {
	ID        string    `json:"id"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	FullName  string    `json:"fullName"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Price / Stock 用指针区分“缺失”和零值
type ProductRequest struct {
	SKU         string           `json:"sku" binding:"notblank"`
	Name        string           `json:"name" binding:"notblank"`
	Description string           `json:"description"`
	Price       *decimal.Decimal `json:"price" binding:"required,gt=0,money"`
	Stock       *int             `json:"stock" binding:"required,gte=0"`
	Category    string           `json:"category" binding:"notblank"`
	ImageURL    string           `json:"imageUrl"`
}

func (ProductRequest) FieldMessages() map[string]string {
	return map[string]string{
		"sku.notblank":      "SKU is required",
		"name.notblank":     "Product name is required",
		"price.required":    "Price is required",
		"price.gt":          "Price must be greater than 0",
		"price.money":       "Price must have at most 15 integer digits and 4 decimal places",
		"stock.required":    "Stock is required",
		"stock.gte":         "Stock cannot be negative",
		"category.notblank": "Category is required",
	}
}

type ProductResponse struct {
	ID          string          `json:"id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Price       decimal.Decimal `json:"price"`
	Stock       int             `json:"stock"`
	InStock     bool            `json:"inStock"`
	Category    string          `json:"category"`
	ImageURL    string          `json:"imageUrl,omitempty"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

type StockQuery struct {
	Quantity *int `form:"quantity" binding:"required,gte=0"`
}

func (StockQuery) FieldMessages() map[string]string {
	return map[string]string{
		"quantity.required": "Quantity is required",
		"quantity.gte":      "Quantity cannot be negative",
	}
}

type SearchQuery struct {
	Query string `form:"query"`
}
