package repo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"ecommerce-services/internal/domain"
)

type MongoUserRepo struct{ col *mongo.Collection }

func NewMongoUserRepo(db *mongo.Database) *MongoUserRepo {
	return &MongoUserRepo{col: db.Collection(UsersCollection)}
}

// Save 无 id 时插入并回填 ObjectID；有 id 时按 _id 整体替换（upsert）
func (r *MongoUserRepo) Save(ctx context.Context, u *domain.User) error {
	doc := userToDocument(u)
	if u.ID == "" {
		res, err := r.col.InsertOne(ctx, doc)
		if err != nil {
			return translateMongoErr(err)
		}
		oid, ok := res.InsertedID.(primitive.ObjectID)
		if !ok {
			return fmt.Errorf("unexpected inserted id %T", res.InsertedID)
		}
		u.ID = oid.Hex()
		return nil
	}
	if doc.ID.IsZero() {
		return fmt.Errorf("invalid user id %q", u.ID)
	}
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return translateMongoErr(err)
}

func (r *MongoUserRepo) findOne(ctx context.Context, filter bson.M) (*domain.User, error) {
	var doc userDocument
	err := r.col.FindOne(ctx, filter).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u := doc.toDomain()
	return &u, nil
}

func (r *MongoUserRepo) FindByID(ctx context.Context, id string) (*domain.User, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *MongoUserRepo) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *MongoUserRepo) ExistsByID(ctx context.Context, id string) (bool, error) {
	oid, ok := objectID(id)
	if !ok {
		return false, nil
	}
	return exists(ctx, r.col, bson.M{"_id": oid})
}

func (r *MongoUserRepo) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return exists(ctx, r.col, bson.M{"email": email})
}

func (r *MongoUserRepo) DeleteByID(ctx context.Context, id string) error {
	oid, ok := objectID(id)
	if !ok {
		return nil
	}
	_, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	return err
}

func (r *MongoUserRepo) FindAll(ctx context.Context) ([]domain.User, error) {
	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var docs []userDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]domain.User, 0, len(docs))
	for i := range docs {
		out = append(out, docs[i].toDomain())
	}
	return out, nil
}

func exists(ctx context.Context, col *mongo.Collection, filter bson.M) (bool, error) {
	n, err := col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	return n > 0, err
}

func translateMongoErr(err error) error {
	if err != nil && mongo.IsDuplicateKeyError(err) {
		return domain.ErrDuplicateKey
	}
	return err
}
