// Package mysql 提供用户仓储接口的 MySQL GORM 实现。
package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/wyfcoding/foodordering/internal/auth/domain"
	"github.com/wyfcoding/foodordering/pkg/logger"
	"gorm.io/gorm"
)

// UserModel 用户数据库模型，直接映射 users 表。
type UserModel struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;type:varchar(100);not null"`
	Email        string    `gorm:"column:email;type:varchar(255);uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(255);not null"`
	Phone        string    `gorm:"column:phone;type:varchar(20)"`
	Role         string    `gorm:"column:role;type:varchar(10);not null;default:'user'"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

// TableName 指定表名
func (UserModel) TableName() string { return "users" }

type userRepositoryImpl struct {
	db *gorm.DB
}

// NewUserRepository 创建用户仓储实例
func NewUserRepository(db *gorm.DB) domain.UserRepository {
	return &userRepositoryImpl{db: db}
}

// Save 实现 domain.UserRepository.Save
func (r *userRepositoryImpl) Save(ctx context.Context, user *domain.User) error {
	model := &UserModel{
		Name:         user.Name,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		Phone:        user.Phone,
		Role:         string(user.Role),
	}
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		logger.Error(ctx, "user_repository.save failed", "email", user.Email, "error", err)
		return fmt.Errorf("failed to save user: %w", err)
	}
	*user = *toDomainUser(model)
	return nil
}

// GetByEmail 实现 domain.UserRepository.GetByEmail
func (r *userRepositoryImpl) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "user_repository.get_by_email failed", "email", email, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&model), nil
}

// GetByID 实现 domain.UserRepository.GetByID
func (r *userRepositoryImpl) GetByID(ctx context.Context, id uint) (*domain.User, error) {
	var model UserModel
	if err := r.db.WithContext(ctx).First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		logger.Error(ctx, "user_repository.get_by_id failed", "user_id", id, "error", err)
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return toDomainUser(&model), nil
}

// UpdateProfile 实现 domain.UserRepository.UpdateProfile
func (r *userRepositoryImpl) UpdateProfile(ctx context.Context, id uint, name, phone string) error {
	err := r.db.WithContext(ctx).Model(&UserModel{}).Where("id = ?", id).
		Updates(map[string]interface{}{"name": name, "phone": phone}).Error
	if err != nil {
		logger.Error(ctx, "user_repository.update_profile failed", "user_id", id, "error", err)
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func toDomainUser(m *UserModel) *domain.User {
	return &domain.User{
		ID:           m.ID,
		Name:         m.Name,
		Email:        m.Email,
		PasswordHash: m.PasswordHash,
		Phone:        m.Phone,
		Role:         domain.UserRole(m.Role),
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}
