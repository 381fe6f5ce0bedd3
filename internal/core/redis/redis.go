package redis

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"ecommerce-services/internal/core/config"
)

// New addr 为空返回 (nil, nil)，调用方回退到进程内实现
func New(ctx context.Context, c config.Redis) (*goredis.Client, error) {
	if c.Addr == "" {
		return nil, nil
	}
	rdb := goredis.NewClient(&goredis.Options{Addr: c.Addr, Password: c.Password, DB: c.DB})
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, err
	}
	return rdb, nil
}
