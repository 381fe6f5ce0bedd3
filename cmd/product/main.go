package main

import (
	"context"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"ecommerce-services/internal/backend"
	"ecommerce-services/internal/core/config"
	"ecommerce-services/internal/core/logger"
	"ecommerce-services/internal/core/redis"
	"ecommerce-services/internal/core/server"
	"ecommerce-services/internal/service"
	"ecommerce-services/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}
	log, cleanup := logger.New(cfg.Log, "product-service")
	defer cleanup()
	defer logger.RedirectStdLog(log, zapcore.InfoLevel)()

	ctx := context.Background()

	// 存储（失败直接 Fatal）
	store, err := backend.Open(ctx, cfg.Store, log, backend.Products)
	if err != nil {
		log.Fatal("store open", zap.String("driver", cfg.Store.Driver), zap.Error(err))
	}
	defer func() { _ = store.Close(context.Background()) }()

	// Redis 可选，只用于跨副本限流
	rdb, err := redis.New(ctx, cfg.Redis)
	if err != nil {
		log.Fatal("redis connect", zap.String("addr", cfg.Redis.Addr), zap.Error(err))
	}
	if rdb != nil {
		defer rdb.Close()
	}

	svc := service.NewProductService(store.Products, log)
	r := router.NewProductEngine(router.Deps{
		Name:   "product",
		Log:    log,
		Limits: cfg.HTTP,
		Redis:  rdb,
		Store:  store,
	}, svc)

	httpCfg := cfg.App.Product
	srv := server.FromConfig(httpCfg, r)
	baseURL := server.BaseURL(httpCfg.Host, httpCfg.Port)
	log.Info("product service starting",
		zap.String("addr", srv.Addr),
		zap.String("store", store.Driver),
		zap.String("health", baseURL+"/health"),
		zap.String("api", baseURL+router.ProductsBase),
	)

	if err := server.Run(srv, log, time.Duration(cfg.HTTP.ShutdownTimeoutSec)*time.Second); err != nil {
		log.Fatal("product service FAILED", zap.Error(err))
	}
}
