package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	ginzap "github.com/gin-contrib/zap"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/core/cache"
	"go-bookstore-api/internal/repo"
	"go-bookstore-api/internal/service"
	mdw "go-bookstore-api/internal/transport/http/middleware"
)

// NewAPIEngine ch 可为 nil（未配 redis 时商品列表直查库）
func NewAPIEngine(l *zap.Logger, db *gorm.DB, ch *cache.Cache, jwter *auth.JWTer, productTTL time.Duration) *gin.Engine {
	r := gin.New()

	// 中间件
	r.Use(
		mdw.RequestID(),
		mdw.RateLimit(200, 400),
		mdw.ConcurrencyLimit(300),
		mdw.MaxBodyBytes(16<<20),
		mdw.Timeout(10*time.Second),
		ginzap.RecoveryWithZap(l, true),
		cors.Default(),
		mdw.Metrics(),
		mdw.AccessLog(l),
	)

	// 健康检查 + 指标
	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"ok": 1}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	users := repo.NewUserRepo(db)
	products := repo.NewProductRepo(db)
	orders := repo.NewOrderRepo(db)
	userSvc := service.NewUserService(users)

	api := r.Group("/api/v1")
	MountAll(api,
		&authModule{auth: service.NewAuthService(users, jwter), users: userSvc, jwt: jwter},
		&productsModule{svc: service.NewProductService(products, ch, productTTL), jwt: jwter},
		&ordersModule{svc: service.NewOrderService(users, orders), jwt: jwter},
		&usersModule{svc: userSvc, jwt: jwter},
	)
	return r
}
