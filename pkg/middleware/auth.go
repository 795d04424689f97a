package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/darklord813/gamevault/pkg/configs"
	"github.com/darklord813/gamevault/pkg/internal/service"
)

// AdminAuthMiddleware 校验管理端请求携带的会话令牌。
//   - 令牌通过 Authorization: Bearer <token> 或 X-Admin-Token 头携带
//   - 会话由 SessionService 签发并存储在 KV 中，过期或未知令牌返回 401
//   - auth.enabled=false 时跳过校验（本地开发用）.
func AdminAuthMiddleware(conf configs.AuthConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !conf.Enabled {
			c.Next()
			return
		}

		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		svc := service.NewSessionService(c.Request.Context())
		if !svc.Authenticated(c.Request.Context(), token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		c.Next()
	}
}

// bearerToken 提取请求中的会话令牌。
func bearerToken(c *gin.Context) string {
	auth := strings.TrimSpace(c.GetHeader("Authorization"))
	if after, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(after)
	}

	return strings.TrimSpace(c.GetHeader("X-Admin-Token"))
}
