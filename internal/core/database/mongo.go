package database

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

// ConnectMongo 建连并 Ping 一次主节点，失败时断开
func ConnectMongo(ctx context.Context, uri string, timeout time.Duration) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().
		ApplyURI(uri).
		SetConnectTimeout(timeout).
		SetServerSelectionTimeout(timeout))
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}
	return client, nil
}

// EnsureUserIndexes email 唯一索引是 email 唯一性的最终保证
func EnsureUserIndexes(ctx context.Context, db *mongo.Database, l *zap.Logger) error {
	return ensureIndexes(ctx, db.Collection("users"), l, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetName("email_unique").SetUnique(true),
	})
}

func EnsureProductIndexes(ctx context.Context, db *mongo.Database, l *zap.Logger) error {
	return ensureIndexes(ctx, db.Collection("products"), l,
		mongo.IndexModel{
			Keys:    bson.D{{Key: "sku", Value: 1}},
			Options: options.Index().SetName("sku_unique").SetUnique(true),
		},
		mongo.IndexModel{
			Keys:    bson.D{{Key: "category", Value: 1}},
			Options: options.Index().SetName("category_index"),
		},
	)
}

func ensureIndexes(ctx context.Context, col *mongo.Collection, l *zap.Logger, models ...mongo.IndexModel) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	names, err := col.Indexes().CreateMany(ctx, models)
	if err != nil {
		l.Error("create indexes failed", zap.String("collection", col.Name()), zap.Error(err))
		return err
	}
	l.Info("indexes ready", zap.String("collection", col.Name()), zap.Strings("indexes", names))
	return nil
}
