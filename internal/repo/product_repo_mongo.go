package repo

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-services/internal/domain"
)

type MongoProductRepo struct{ col *mongo.Collection }

func NewMongoProductRepo(db *mongo.Database) *MongoProductRepo {
	return &MongoProductRepo{col: db.Collection(ProductsCollection)}
}

func (r *MongoProductRepo) Save(ctx context.Context, p *domain.Product) error {
	doc, err := productToDocument(p)
	if err != nil {
		return err
	}
	if p.ID == "" {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			return translateMongoErr(err)
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("unexpected inserted id %T", res.InsertedID)
		}
		p.ID = oid.Hex()
		return nil
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("invalid product id %q", p.ID)
	}
	_, err = r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return translateMongoErr(err)
}

func (r *MongoProductRepo) findOne(ctx context.Context, filter bson.M) (*domain.Product, error) {
	var doc productDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	p, err := doc.toDomain()
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *MongoProductRepo) FindByID(ctx context.Context, id string) (*domain.Product, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoProductRepo) FindBySKU(ctx context.Context, sku string) (*domain.Product, error) {
	return r.findOne(ctx, bson.M{"sku": sku})
}

func (r *MongoProductRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return exists(ctx, r.col, bson.M{"_id": oid})
}

func (r *MongoProductRepo) ExistsBySKU(ctx context.Context, sku string) (bool, error) {
	return exists(ctx, r.col, bson.M{"sku": sku})
}

func (r *MongoProductRepo) DeleteByID(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *MongoProductRepo) find(ctx context.Context, filter bson.M) ([]domain.Product, error) {
	cur, err := r.col.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.Product, 0, len(docs))
	for i := range docs {
		p, err := docs[i].toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *MongoProductRepo) FindAll(ctx context.Context) ([]domain.Product, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoProductRepo) FindByCategory(ctx context.Context, category string) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"category": category})
}

func (r *MongoProductRepo) FindByNameContaining(ctx context.Context, q string) ([]domain.Product, error) {
	if q == "" {
		return r.find(ctx, bson.M{})
	}
	return r.find(ctx, bson.M{"name": primitive.Regex{Pattern: regexp.QuoteMeta(q), Options: "i"}})
}

func (r *MongoProductRepo) FindByPriceBetween(ctx context.Context, min, max decimal.Decimal) ([]domain.Product, error) {
	lo, err := toDecimal128(min)
	if err != nil {
		return nil, err
	}
	hi, err := toDecimal128(max)
	if err != nil {
		return nil, err
	}
	return r.find(ctx, bson.M{"price": bson.M{"$gte": lo, "$lte": hi}})
}

func (r *MongoProductRepo) FindByStockGreaterThan(ctx context.Context, min int) ([]domain.Product, error) {
	return r.find(ctx, bson.M{"stock": bson.M{"$gt": min}})
}
