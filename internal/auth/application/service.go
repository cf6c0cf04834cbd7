// Package application 编排认证用例：注册、登录、资料维护。
package application

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/wyfcoding/foodordering/internal/auth/domain"
	"github.com/wyfcoding/foodordering/pkg/apperr"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"golang.org/x/crypto/bcrypt"
)

// SignupCommand 注册命令
type SignupCommand struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

// LoginCommand 登录命令
type LoginCommand struct {
	Email    string
	Password string
}

// UpdateProfileCommand 更新资料命令
type UpdateProfileCommand struct {
	UserID uint
	Name   string
	Phone  string
}

// AuthResult 注册/登录结果：令牌与用户公开字段
type AuthResult struct {
	Token string             `json:"token"`
	User  *domain.PublicUser `json:"user"`
}

// AuthService 认证应用服务
type AuthService struct {
	repo    domain.UserRepository
	tokens  *TokenService
	signups prometheus.Counter
}

// NewAuthService 创建认证服务实例
func NewAuthService(repo domain.UserRepository, tokens *TokenService) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// WithSignupCounter 注入注册成功计数器
func (s *AuthService) WithSignupCounter(c prometheus.Counter) *AuthService {
	s.signups = c
	return s
}

// Signup 处理用户注册
func (s *AuthService) Signup(ctx context.Context, cmd SignupCommand) (*AuthResult, error) {
	if cmd.Name == "" || cmd.Email == "" || cmd.Password == "" {
		return nil, apperr.Validation("Name, email, and password are required")
	}

	existing, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperr.Internal("An error occurred during registration", err)
	}
	if existing != nil {
		return nil, apperr.Conflict("User with this email already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cmd.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Internal("An error occurred during registration", err)
	}

	user := domain.NewUser(cmd.Name, cmd.Email, string(hash), cmd.Phone)
	if err := s.repo.Save(ctx, user); err != nil {
		return nil, apperr.Internal("An error occurred during registration", err)
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, apperr.Internal("An error occurred during registration", err)
	}

	if s.signups != nil {
		s.signups.Inc()
	}
	logger.Info(ctx, "user registered", "user_id", user.ID, "email", user.Email)

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// Login 处理用户登录。
// 邮箱不存在与密码不匹配返回同一错误，避免用户枚举。
func (s *AuthService) Login(ctx context.Context, cmd LoginCommand) (*AuthResult, error) {
	if cmd.Email == "" || cmd.Password == "" {
		return nil, apperr.Validation("Email and password are required")
	}

	user, err := s.repo.GetByEmail(ctx, cmd.Email)
	if err != nil {
		return nil, apperr.Internal("An error occurred during login", err)
	}
	if user == nil {
		return nil, apperr.Auth("Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(cmd.Password)); err != nil {
		return nil, apperr.Auth("Invalid email or password")
	}

	token, err := s.tokens.Sign(user)
	if err != nil {
		return nil, apperr.Internal("An error occurred during login", err)
	}

	return &AuthResult{Token: token, User: user.Public()}, nil
}

// GetProfile 查询当前用户公开资料
func (s *AuthService) GetProfile(ctx context.Context, userID uint) (*domain.PublicUser, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, apperr.Internal("An error occurred while fetching profile", err)
	}
	if user == nil {
		return nil, apperr.NotFound("User not found")
	}
	return user.Public(), nil
}

// UpdateProfile 更新当前用户的姓名与电话
func (s *AuthService) UpdateProfile(ctx context.Context, cmd UpdateProfileCommand) error {
	if cmd.Name == "" {
		return apperr.Validation("Name is required")
	}
	if err := s.repo.UpdateProfile(ctx, cmd.UserID, cmd.Name, cmd.Phone); err != nil {
		return apperr.Internal("An error occurred while updating profile", err)
	}
	return nil
}
