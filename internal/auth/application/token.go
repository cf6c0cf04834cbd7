package application

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/wyfcoding/foodordering/internal/auth/domain"
	"github.com/wyfcoding/foodordering/pkg/middleware"
)

// Claims 令牌负载，内嵌 {id, email, role, name}
type Claims struct {
	UserID uint   `json:"id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	jwt.RegisteredClaims
}

// TokenService 签发与校验 HS256 bearer token。
// 密钥在启动时注入，校验无状态，不依赖会话存储。
type TokenService struct {
	secret []byte
	expiry time.Duration
}

// NewTokenService 创建令牌服务
func NewTokenService(secret string, expiry time.Duration) *TokenService {
	return &TokenService{secret: []byte(secret), expiry: expiry}
}

// Sign 为用户签发令牌
func (s *TokenService) Sign(user *domain.User) (string, error) {
	now := time.Now()
	claims := Claims{
		UserID: user.ID,
		Email:  user.Email,
		Role:   string(user.Role),
		Name:   user.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Parse 解析并校验令牌，返回负载
func (s *TokenService) Parse(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

// VerifyToken 实现 middleware.TokenVerifier
func (s *TokenService) VerifyToken(tokenStr string) (*middleware.Identity, error) {
	claims, err := s.Parse(tokenStr)
	if err != nil {
		return nil, err
	}
	return &middleware.Identity{
		UserID: claims.UserID,
		Email:  claims.Email,
		Role:   claims.Role,
		Name:   claims.Name,
	}, nil
}
