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

type productsModule struct {
	svc *service.ProductService
	jwt *auth.JWTer
}

func (m *productsModule) Priority() int { return 20 }

func (m *productsModule) MountAPI(api *gin.RouterGroup) {
	// 目录读公开，写需要 Manager/Admin
	pub := httpez.New(api)
	staff := api.Group("", mdw.RequireRoles(m.jwt, domain.RoleManager, domain.RoleAdmin))

	pub.GET("/products", func(c *gin.Context) (any, error) {
		out, err := m.svc.List(c.Request.Context())
		if err != nil {
			return nil, httpez.Internal("list products failed", err)
		}
		return out, nil
	})

	pub.GET("/products/:id", func(c *gin.Context) (any, error) {
		id, err := parseID(c.Param("id"))
		if err != nil {
			return nil, httpez.BadRequest("invalid product id")
		}
		p, err := m.svc.Get(c.Request.Context(), id)
		if err != nil {
			return nil, mapProductErr(err)
		}
		return p, nil
	})

	httpez.Register[service.ProductInput, *domain.Product](httpez.New(staff), httpez.Action[service.ProductInput, *domain.Product]{
		Method: http.MethodPost,
		Path:   "/products",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ProductInput) (*domain.Product, error) {
			p, err := m.svc.Create(c.Request.Context(), *in)
			if err != nil {
				return nil, mapProductErr(err)
			}
			return p, nil
		},
	})

	httpez.Register[service.ProductInput, *domain.Product](httpez.New(staff), httpez.Action[service.ProductInput, *domain.Product]{
		Method: http.MethodPut,
		Path:   "/products/:id",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *service.ProductInput) (*domain.Product, error) {
			id, err := parseID(c.Param("id"))
			if err != nil {
				return nil, httpez.BadRequest("invalid product id")
			}
			p, err := m.svc.Update(c.Request.Context(), id, *in)
			if err != nil {
				return nil, mapProductErr(err)
			}
			return p, nil
		},
	})

	httpez.Register[struct{}, gin.H](httpez.New(staff), httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/products/:id",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) (gin.H, error) {
			id, err := parseID(c.Param("id"))
			if err != nil {
				return nil, httpez.BadRequest("invalid product id")
			}
			if err := m.svc.Delete(c.Request.Context(), id); err != nil {
				return nil, mapProductErr(err)
			}
			return gin.H{"id": id}, nil
		},
	})
}

func mapProductErr(err error) error {
	if errors.Is(err, domain.ErrProductNotFound) {
		return httpez.NotFound("product not found")
	}
	return httpez.Internal("product operation failed", err)
}
