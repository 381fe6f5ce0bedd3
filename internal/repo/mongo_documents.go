package repo

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"ecommerce-services/internal/domain"
)

const (
	UsersCollection    = "users"
	ProductsCollection = "products"
)

type userDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FirstName string             `bson:"firstName"`
	LastName  string             `bson:"lastName"`
	Email     string             `bson:"email"`
	Phone     string             `bson:"phone,omitempty"`
	Address   string             `bson:"address,omitempty"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// price 存 Decimal128，避免二进制浮点
type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	SKU         string               `bson:"sku"`
	Name        string               `bson:"name"`
	Description string               `bson:"description,omitempty"`
	Price       primitive.Decimal128 `bson:"price"`
	Stock       int                  `bson:"stock"`
	Category    string               `bson:"category"`
	ImageURL    string               `bson:"imageUrl,omitempty"`
	CreatedAt   time.Time            `bson:"createdAt"`
	UpdatedAt   time.Time            `bson:"updatedAt"`
}

// objectID 非法 hex 视为不存在的 id
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	return oid, err == nil
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	v, err := primitive.ParseDecimal128(d.String())
	if err != nil {
		return primitive.Decimal128{}, fmt.Errorf("price %s: %w", d.String(), err)
	}
	return v, nil
}

func fromDecimal128(v primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(v.String())
}

func userToDocument(u *domain.User) userDocument {
	doc := userDocument{
		FirstName: u.FirstName, LastName: u.LastName, Email: u.Email,
		Phone: u.Phone, Address: u.Address, CreatedAt: u.CreatedAt, UpdatedAt: u.UpdatedAt,
	}
	if oid, ok := objectID(u.ID); ok {
		doc.ID = oid
	}
	return doc
}

func (d *userDocument) toDomain() domain.User {
	return domain.User{
		ID: d.ID.Hex(), FirstName: d.FirstName, LastName: d.LastName, Email: d.Email,
		Phone: d.Phone, Address: d.Address, CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}
}

func productToDocument(p *domain.Product) (productDocument, error) {
	price, err := toDecimal128(p.Price)
	if err != nil {
		return productDocument{}, err
	}
	doc := productDocument{
		SKU: p.SKU, Name: p.Name, Description: p.Description, Price: price, Stock: p.Stock,
		Category: p.Category, ImageURL: p.ImageURL, CreatedAt: p.CreatedAt, UpdatedAt: p.UpdatedAt,
	}
	if oid, ok := objectID(p.ID); ok {
		doc.ID = oid
	}
	return doc, nil
}

func (d *productDocument) toDomain() (domain.Product, error) {
	price, err := fromDecimal128(d.Price)
	if err != nil {
		return domain.Product{}, fmt.Errorf("product %s: bad price: %w", d.ID.Hex(), err)
	}
	return domain.Product{
		ID: d.ID.Hex(), SKU: d.SKU, Name: d.Name, Description: d.Description, Price: price,
		Stock: d.Stock, Category: d.Category, ImageURL: d.ImageURL,
		CreatedAt: d.CreatedAt, UpdatedAt: d.UpdatedAt,
	}, nil
}
