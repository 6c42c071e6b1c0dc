package domain

import (
	"context"
	"fmt"
)

// Role 以文本入库（"User"/"Manager"/"Admin"），不要改成数字编码
type Role string

const (
	RoleUser    Role = "User"
	RoleManager Role = "Manager"
	RoleAdmin   Role = "Admin"
)

// ParseRole 严格匹配枚举名
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleUser, RoleManager, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;size:64;not null" json:"username"`
	PasswordHash string `gorm:"size:100;not null" json:"-"`
	Role         Role   `gorm:"type:varchar(16);not null" json:"role"`
}

func (User) TableName() string { return "users" }

type UserRepository interface {
	Create(ctx context.Context, u *User) error
	FindByID(ctx context.Context, id uint) (*User, error)
	FindByUsername(ctx context.Context, username string) (*User, error)
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, u *User) error
	Delete(ctx context.Context, id uint) error
}
