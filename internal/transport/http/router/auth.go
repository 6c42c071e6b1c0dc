package router

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/service"
	httpez "go-bookstore-api/internal/transport/http/ez"
	mdw "go-bookstore-api/internal/transport/http/middleware"
)

type authModule struct {
	auth  *service.AuthService
	users *service.UserService
	jwt   *auth.JWTer
}

func (m *authModule) Priority() int { return 10 }

func (m *authModule) MountAPI(api *gin.RouterGroup) {
	ezPublic := httpez.New(api)

	type credsIn struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required"`
	}
	type registerOut struct {
		Message string `json:"message"`
	}
	httpez.Register[credsIn, registerOut](ezPublic, httpez.Action[credsIn, registerOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *credsIn) (registerOut, error) {
			if _, err := m.auth.Register(c.Request.Context(), in.Username, in.Password); err != nil {
				if errors.Is(err, domain.ErrUsernameTaken) {
					return registerOut{}, httpez.Conflict("username already taken")
				}
				return registerOut{}, httpez.Internal("register failed", err)
			}
			return registerOut{Message: "User registered successfully"}, nil
		},
	})

	type loginOut struct {
		Token string `json:"token"`
	}
	httpez.Register[credsIn, loginOut](ezPublic, httpez.Action[credsIn, loginOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, in *credsIn) (loginOut, error) {
			token, err := m.auth.Login(c.Request.Context(), in.Username, in.Password)
			if err != nil {
				if errors.Is(err, domain.ErrUnknownUser) {
					return loginOut{}, httpez.Unauthorized("invalid credentials")
				}
				return loginOut{}, httpez.Internal("login failed", err)
			}
			return loginOut{Token: token}, nil
		},
	})

	// /me 需要登录，角色不限
	authed := api.Group("", mdw.RequireRoles(m.jwt))
	type meOut struct {
		ID       uint        `json:"id"`
		Username string      `json:"username"`
		Role     domain.Role `json:"role"`
	}
	httpez.Register[struct{}, meOut](httpez.New(authed), httpez.Action[struct{}, meOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (meOut, error) {
			u, err := m.users.GetByUsername(c.Request.Context(), c.GetString(mdw.KeyUsername))
			if err != nil {
				if errors.Is(err, domain.ErrUserNotFound) {
					return meOut{}, httpez.Unauthorized("unauthorized")
				}
				return meOut{}, httpez.Internal("load profile failed", err)
			}
			return meOut{ID: u.ID, Username: u.Username, Role: u.Role}, nil
		},
	})
}
