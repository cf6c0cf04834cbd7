package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// identityKey gin context key，存放验证通过的调用者身份
const identityKey = "auth_identity"

// Identity 令牌中携带的调用者身份
type Identity struct {
	UserID uint
	Email  string
	Role   string
	Name   string
}

// IsAdmin 判断调用者是否为管理员
func (i *Identity) IsAdmin() bool { return i.Role == "admin" }

// TokenVerifier 校验 bearer token 并还原身份
type TokenVerifier interface {
	VerifyToken(token string) (*Identity, error)
}

// Authenticate 解析 Authorization: Bearer <token>，校验并将身份写入请求上下文。
// 缺失令牌返回 401，无效或过期返回 403。
func Authenticate(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		token := ""
		if parts := strings.SplitN(authHeader, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			token = parts[1]
		}

		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authentication required"})
			return
		}

		identity, err := verifier.VerifyToken(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Invalid or expired token"})
			return
		}

		c.Set(identityKey, identity)
		c.Next()
	}
}

// RequireAdmin 管理员角色门禁，必须位于 Authenticate 之后。
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := IdentityFrom(c)
		if !ok || !identity.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			return
		}
		c.Next()
	}
}

// IdentityFrom 取出当前请求已验证的身份
func IdentityFrom(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	identity, ok := v.(*Identity)
	return identity, ok
}
