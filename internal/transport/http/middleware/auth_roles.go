package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"go-bookstore-api/internal/core/auth"
	"go-bookstore-api/internal/domain"
	resp "go-bookstore-api/internal/transport/http/response"
)

const (
	KeyUsername = "username"
	KeyRole     = "role"
)

// RequireRoles 每个操作声明自己的角色白名单；不传角色 = 登录即可。
// 通过后把 (username, role) 写进 context，后续 handler 不再碰 token。
func RequireRoles(j *auth.JWTer, roles ...domain.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		if len(roles) > 0 {
			ok := false
			for _, r := range roles {
				if claims.Role == string(r) {
					ok = true
					break
				}
			}
			if !ok {
				c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
				return
			}
		}
		c.Set(KeyUsername, claims.Username)
		c.Set(KeyRole, claims.Role)
		c.Next()
	}
}
