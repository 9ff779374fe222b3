package middleware

import (
	"net/http"
	"strings"
	"time"

	"Agora/pkg/context"
	"Agora/pkg/jwt"
	"Agora/pkg/response"

	"github.com/gin-gonic/gin"
)

// Auth 强制鉴权, 未登录直接 401
func Auth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := parseBearer(c, secret)
		if !ok {
			return
		}
		// 临期令牌顺手续签
		if time.Until(claims.ExpiresAt.Time) < 5*time.Minute {
			newToken, err := jwt.GenerateToken(secret, claims.UserID, "access", 2*time.Hour)
			if err == nil {
				c.Header("X-New-Access-Token", newToken)
			}
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}

// OptionalAuth 可选鉴权, 匿名请求放行, 带合法令牌则注入 user_id
// 用于公开读接口里区分"我的投票"等个性化字段
func OptionalAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.Next()
			return
		}
		claims, err := jwt.ParseToken(secret, "access", parts[1])
		if err != nil {
			c.Next()
			return
		}
		c.Set(context.CtxUserID, claims.UserID)
		c.Next()
	}
}

func parseBearer(c *gin.Context, secret []byte) (*jwt.Claims, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		response.Abort(c, http.StatusUnauthorized, "缺少 Authorization")
		return nil, false
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		response.Abort(c, http.StatusUnauthorized, "Authorization 格式错误")
		return nil, false
	}

	claims, err := jwt.ParseToken(secret, "access", parts[1])
	if err != nil {
		response.Abort(c, http.StatusUnauthorized, "令牌无效或已过期")
		return nil, false
	}
	return claims, true
}
