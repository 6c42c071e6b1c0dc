package service

import (
	"context"
	"strings"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/pkg/utils"
)

type AuthService struct {
	users domain.UserRepository
	jwter *auth.JWTer
}

func NewAuthService(users domain.UserRepository, jwter *auth.JWTer) *AuthService {
	return &AuthService{users: users, jwter: jwter}
}

// Register 新账号固定 User 角色
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
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

// Login 校验密码并签发 JWT；用户不存在和密码错误对外不区分
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || !utils.CheckPassword(password, u.PasswordHash) {
		return "", domain.ErrUnknownUser
	}
	return s.jwter.Issue(u.Username, string(u.Role))
}

func isDupKey(err error) bool {
	// 不依赖 gorm.ErrDuplicatedKey，避免驱动差异
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") ||
		strings.Contains(msg, "unique constraint") ||
		strings.Contains(msg, "unique violation") ||
		strings.Contains(msg, "duplicate key")
}
