package service

import (
	"context"

	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

type UserService struct {
	users domain.UserRepository
}

func NewUserService(users domain.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]domain.User, error) {
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, id uint) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	return u, nil
}

func (s *UserService) Create(ctx context.Context, username, password string) (*domain.User, error) {
	u := &domain.User{
		Username:     username,
		PasswordHash: utils.HashPassword(password),
		Role:         domain.RoleUser,
	}
	if err := s.users.Create(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

// Update 只改用户名和密码，角色不在本接口范围
func (s *UserService) Update(ctx context.Context, id uint, username, password string) (*domain.User, error) {
	u, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	u.Username = username
	u.PasswordHash = utils.HashPassword(password)
	if err := s.users.Update(ctx, u); err != nil {
		if isDupKey(err) {
			return nil, domain.ErrUsernameTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) Delete(ctx context.Context, id uint) error {
	return s.users.Delete(ctx, id)
}
