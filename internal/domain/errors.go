package domain

import "errors"

var (
	// ErrUnknownUser 调用方身份解析不到账号
	ErrUnknownUser     = errors.New("unknown user")
	ErrUserNotFound    = errors.New("user not found")
	ErrProductNotFound = errors.New("product not found")
	ErrOrderNotFound   = errors.New("order not found")
	ErrValidation      = errors.New("validation failed")
	ErrUsernameTaken   = errors.New("username already taken")
)
