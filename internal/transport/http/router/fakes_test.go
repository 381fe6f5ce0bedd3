package router

import (
	"context"
	"errors"

	"ecommerce-services/internal/domain"
)

type failingUsers struct{ domain.UserRepository }

func (failingUsers) FindAll(context.Context) ([]domain.User, error) {
	return nil, errors.New("connection refused")
}

// blockingUsers FindAll 不看 context，挂住直到 release 关闭（模拟卡住的存储）
type blockingUsers struct {
	domain.UserRepository
	entered chan struct{}
	release chan struct{}
}

func (b blockingUsers) FindAll(context.Context) ([]domain.User, error) {
	b.entered <- struct{}{}
	<-b.release
	return nil, nil
}
