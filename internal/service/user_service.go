package service

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"ecommerce-services/internal/domain"
)

const userResource = "user"

type UserService struct {
	repo domain.UserRepository
	log  *zap.Logger
	now  Clock
}

func NewUserService(repo domain.UserRepository, l *zap.Logger) *UserService {
	return &UserService{repo: repo, log: l.Named("user-service"), now: SystemClock}
}

// WithClock 测试用
func (s *UserService) WithClock(c Clock) *UserService {
	s.now = c
	return s
}

func (s *UserService) storeErr(op string, err error, fields ...zap.Field) error {
	s.log.Error(op+" failed", append(fields, zap.Error(err))...)
	return domain.Internal(op+" failed", err)
}

func (s *UserService) Create(ctx context.Context, req UserRequest) (out UserResponse, err error) {
	defer func() { observe(userResource, "create", err) }()
	s.log.Info("creating user", zap.String("email", req.Email))

	// 预检查只是为了给出友好错误，真正的保证是 email 唯一索引
	taken, err := s.repo.ExistsByEmail(ctx, req.Email)
	if err != nil {
		return out, s.storeErr("check email", err, zap.String("email", req.Email))
	}
	if taken {
		return out, duplicateEmail(req.Email)
	}

	now := s.now()
	u := domain.User{CreatedAt: now, UpdatedAt: now}
	applyUserRequest(&u, &req)
	if err := s.repo.Save(ctx, &u); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return out, duplicateEmail(req.Email)
		}
		return out, s.storeErr("save user", err, zap.String("email", req.Email))
	}
	s.log.Info("user created", zap.String("id", u.ID))
	return toUserResponse(&u), nil
}

func (s *UserService) Get(ctx context.Context, id string) (out UserResponse, err error) {
	defer func() { observe(userResource, "get", err) }()
	s.log.Debug("fetching user", zap.String("id", id))

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return out, s.storeErr("find user", err, zap.String("id", id))
	}
	if u == nil {
		return out, userNotFound(id)
	}
	return toUserResponse(u), nil
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (out UserResponse, err error) {
	defer func() { observe(userResource, "get_by_email", err) }()
	s.log.Debug("fetching user by email", zap.String("email", email))

	u, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		return out, s.storeErr("find user", err, zap.String("email", email))
	}
	if u == nil {
		return out, domain.NotFound("User not found with email: " + email)
	}
	return toUserResponse(u), nil
}

func (s *UserService) List(ctx context.Context) (out []UserResponse, err error) {
	defer func() { observe(userResource, "list", err) }()

	us, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, s.storeErr("list users", err)
	}
	return toUserResponses(us), nil
}

func (s *UserService) Update(ctx context.Context, id string, req UserRequest) (out UserResponse, err error) {
	defer func() { observe(userResource, "update", err) }()
	s.log.Info("updating user", zap.String("id", id))

	u, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return out, s.storeErr("find user", err, zap.String("id", id))
	}
	if u == nil {
		return out, userNotFound(id)
	}
	if u.Email != req.Email {
		taken, err := s.repo.ExistsByEmail(ctx, req.Email)
		if err != nil {
			return out, s.storeErr("check email", err, zap.String("email", req.Email))
		}
		if taken {
			return out, duplicateEmail(req.Email)
		}
	}

	applyUserRequest(u, &req)
	u.UpdatedAt = touch(s.now, u.CreatedAt, u.UpdatedAt)
	if err := s.repo.Save(ctx, u); err != nil {
		if errors.Is(err, domain.ErrDuplicateKey) {
			return out, duplicateEmail(req.Email)
		}
		return out, s.storeErr("save user", err, zap.String("id", id))
	}
	s.log.Info("user updated", zap.String("id", id))
	return toUserResponse(u), nil
}

func (s *UserService) Delete(ctx context.Context, id string) (err error) {
	defer func() { observe(userResource, "delete", err) }()
	s.log.Info("deleting user", zap.String("id", id))

	ok, err := s.repo.ExistsByID(ctx, id)
	if err != nil {
		return s.storeErr("check user", err, zap.String("id", id))
	}
	if !ok {
		return userNotFound(id)
	}
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return s.storeErr("delete user", err, zap.String("id", id))
	}
	s.log.Info("user deleted", zap.String("id", id))
	return nil
}

func userNotFound(id string) error { return domain.NotFound("User not found with ID: " + id) }

func duplicateEmail(email string) error { return domain.Duplicate("Email already exists: " + email) }
