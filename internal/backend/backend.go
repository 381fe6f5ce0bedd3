// Package backend 按 store.driver 打开持久化后端，并给出对应的仓储实现。
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecommerce-services/internal/core/config"
	"ecommerce-services/internal/core/database"
	"ecommerce-services/internal/domain"
	"ecommerce-services/internal/repo"
)

type Collection int

const (
	Users Collection = iota
	Products
)

type Backend struct {
	Driver   string
	Users    domain.UserRepository
	Products domain.ProductRepository

	ping  func(ctx context.Context) error
	close func(ctx context.Context) error
}

func (b *Backend) Ping(ctx context.Context) error  { return b.ping(ctx) }
func (b *Backend) Close(ctx context.Context) error { return b.close(ctx) }

// Memory 进程内后端，本地调试和测试用
func Memory() *Backend {
	noop := func(context.Context) error { return nil }
	return &Backend{
		Driver:   "memory",
		Users:    repo.NewMemoryUserRepo(),
		Products: repo.NewMemoryProductRepo(),
		ping:     noop,
		close:    noop,
	}
}

// Open 连接后端，并为 cols 建索引 / 迁移表结构
func Open(ctx context.Context, c config.Store, l *zap.Logger, cols ...Collection) (*Backend, error) {
	switch c.Driver {
	case "memory":
		l.Warn("using in-memory store, data is lost on restart")
		return Memory(), nil
	case "", "mongo", "mongodb":
		return openMongo(ctx, c.Mongo, l, cols)
	case "postgres", "mysql":
		return openSQL(c.Driver, c.SQL, l, cols)
	default:
		return nil, fmt.Errorf("unknown store driver %q", c.Driver)
	}
}

func openMongo(ctx context.Context, c config.Mongo, l *zap.Logger, cols []Collection) (*Backend, error) {
	timeout := time.Duration(c.TimeoutSec) * time.Second
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	client, err := database.ConnectMongo(ctx, c.URI, timeout)
	if err != nil {
		return nil, fmt.Errorf("connect mongo: %w", err)
	}
	db := client.Database(c.Database)
	for _, col := range cols {
		switch col {
		case Users:
			err = database.EnsureUserIndexes(ctx, db, l)
		case Products:
			err = database.EnsureProductIndexes(ctx, db, l)
		}
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, fmt.Errorf("ensure indexes: %w", err)
		}
	}
	l.Info("mongo connected", zap.String("database", db.Name()))
	return &Backend{
		Driver:   "mongo",
		Users:    repo.NewMongoUserRepo(db),
		Products: repo.NewMongoProductRepo(db),
		ping:     func(ctx context.Context) error { return client.Ping(ctx, nil) },
		close:    client.Disconnect,
	}, nil
}

func openSQL(driver string, c config.SQL, l *zap.Logger, cols []Collection) (*Backend, error) {
	db, err := database.NewGorm(database.OptsFromConfig(driver, c), l)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if c.AutoMigrate {
		models := make([]any, 0, len(cols))
		for _, col := range cols {
			switch col {
			case Users:
				models = append(models, &repo.UserModel{})
			case Products:
				models = append(models, &repo.ProductModel{})
			}
		}
		if err := db.AutoMigrate(models...); err != nil {
			_ = sqlDB.Close()
			return nil, fmt.Errorf("automigrate: %w", err)
		}
		l.Info("automigrate done", zap.Int("models", len(models)))
	}
	l.Info("database connected", zap.String("driver", driver))
	return &Backend{
		Driver:   driver,
		Users:    repo.NewGormUserRepo(db),
		Products: repo.NewGormProductRepo(db),
		ping:     sqlDB.PingContext,
		close:    func(context.Context) error { return sqlDB.Close() },
	}, nil
}
