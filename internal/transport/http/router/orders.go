package router

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	"go-bookstore-api/internal/service"
	httpez "go-bookstore-api/internal/transport/http/ez"
	mdw "go-bookstore-api/internal/transport/http/middleware"
)

type ordersModule struct {
	svc *service.OrderService
	jwt *auth.JWTer
}

func (m *ordersModule) Priority() int { return 30 }

func (m *ordersModule) MountAPI(api *gin.RouterGroup) {
	// 角色白名单按操作声明
	buyer := api.Group("", mdw.RequireRoles(m.jwt, domain.RoleUser))
	anyRole := api.Group("", mdw.RequireRoles(m.jwt, domain.RoleUser, domain.RoleManager, domain.RoleAdmin))
	staff := api.Group("", mdw.RequireRoles(m.jwt, domain.RoleManager, domain.RoleAdmin))

	// 下单
	type createIn struct {
		Items []service.OrderLine `json:"items"`
	}
	type createOut struct {
		Message string `json:"message"`
		OrderID uint   `json:"orderId"`
	}
	httpez.Register[createIn, createOut](httpez.New(buyer), httpez.Action[createIn, createOut]{
		Method: http.MethodPost,
		Path:   "/orders",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *createIn) (createOut, error) {
			id, err := m.svc.Create(c.Request.Context(), c.GetString(mdw.KeyUsername), in.Items)
			if err != nil {
				return createOut{}, mapOrderErr(err)
			}
			return createOut{Message: "Order created successfully", OrderID: id}, nil
		},
	})

	// 我的订单（投影里只有商品标题，不暴露 productId）
	httpez.Register[struct{}, []service.OrderSummary](httpez.New(anyRole), httpez.Action[struct{}, []service.OrderSummary]{
		Method: http.MethodGet,
		Path:   "/orders/my",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]service.OrderSummary, error) {
			out, err := m.svc.ListMine(c.Request.Context(), c.GetString(mdw.KeyUsername))
			if err != nil {
				return nil, mapOrderErr(err)
			}
			return out, nil
		},
	})

	// 全量订单（管理端，带完整 User/Product）
	httpez.Register[struct{}, []domain.Order](httpez.New(staff), httpez.Action[struct{}, []domain.Order]{
		Method: http.MethodGet,
		Path:   "/orders",
		Binder: httpez.BindNone,
		Auth:   true,
		Handler: func(c *gin.Context, _ *struct{}) ([]domain.Order, error) {
			out, err := m.svc.ListAll(c.Request.Context())
			if err != nil {
				return nil, mapOrderErr(err)
			}
			return out, nil
		},
	})

	// 状态流转：Pending → Shipped → Delivered，但不强制单调
	type statusIn struct {
		Status string `json:"status" binding:"required"`
	}
	type statusOut struct {
		Message string `json:"message"`
	}
	httpez.Register[statusIn, statusOut](httpez.New(staff), httpez.Action[statusIn, statusOut]{
		Method: http.MethodPut,
		Path:   "/orders/:id/status",
		Binder: httpez.BindJSON,
		Auth:   true,
		Handler: func(c *gin.Context, in *statusIn) (statusOut, error) {
			id, err := parseID(c.Param("id"))
			if err != nil {
				return statusOut{}, httpez.BadRequest("invalid order id")
			}
			status, err := m.svc.UpdateStatus(c.Request.Context(), id, in.Status)
			if err != nil {
				return statusOut{}, mapOrderErr(err)
			}
			return statusOut{Message: "Order status updated to " + string(status)}, nil
		},
	})
}

func mapOrderErr(err error) error {
	switch {
	case errors.Is(err, domain.ErrUnknownUser):
		return httpez.Unauthorized("unauthorized")
	case errors.Is(err, domain.ErrOrderNotFound):
		return httpez.NotFound("order not found")
	case errors.Is(err, domain.ErrValidation):
		return httpez.BadRequest(err.Error())
	}
	return httpez.Internal("order operation failed", err)
}

func parseID(s string) (uint, error) {
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
