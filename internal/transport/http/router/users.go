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

type usersModule struct {
	svc *service.UserService
	jwt *auth.JWTer
}

func (m *usersModule) Priority() int { return 40 }

// MountAPI 账号管理只开放给 Admin
func (m *usersModule) MountAPI(api *gin.RouterGroup) {
	admin := api.Group("", mdw.RequireRoles(m.jwt, domain.RoleAdmin))
	ezAdmin := httpez.New(admin)

	ezAdmin.GET("/users", func(c *gin.Context) (any, error) {
		out, err := m.svc.List(c.Request.Context())
		if err != nil {
			return nil, httpez.Internal("list users failed", err)
		}
		return out, nil
	})

	ezAdmin.GET("/users/:id", func(c *gin.Context) (any, error) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return nil, httpez.BadRequest("invalid user id")
		}
		u, err := m.svc.Get(c.Request.Context(), id)
		if err != nil {
			return nil, mapUserErr(err)
		}
		return u, nil
	})

	type userIn struct {
		Username string `json:"username" binding:"required,max=64"`
		Password string `json:"password" binding:"required"`
	}
	httpez.Register[userIn, *domain.User](ezAdmin, httpez.Action[userIn, *domain.User]{
		Method: http.MethodPost,
		Path:   "/users",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *userIn) (*domain.User, error) {
			u, err := m.svc.Create(c.Request.Context(), in.Username, in.Password)
			if err != nil {
				return nil, mapUserErr(err)
			}
			return u, nil
		},
	})

	httpez.Register[userIn, *domain.User](ezAdmin, httpez.Action[userIn, *domain.User]{
		Method: http.MethodPut,
		Path:   "/users/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *userIn) (*domain.User, error) {
			id, err := parseID(c.Param("id"))
			if err != nil {
				return nil, httpez.BadRequest("invalid user id")
			}
			u, err := m.svc.Update(c.Request.Context(), id, in.Username, in.Password)
			if err != nil {
				return nil, mapUserErr(err)
			}
			return u, nil
		},
	})

	httpez.Register[struct{}, gin.H](ezAdmin, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/users/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := parseID(c.Param("id"))
			if err != nil {
				return nil, httpez.BadRequest("invalid user id")
			}
			if err := m.svc.Delete(c.Request.Context(), id); err != nil {
				return nil, mapUserErr(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}

func mapUserErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		return httpez.NotFound("user not found")
	case errors.Is(err, domain.ErrUsernameTaken):
		return httpez.Conflict("username already taken")
	}
	return httpez.Internal("user operation failed", err)
}
