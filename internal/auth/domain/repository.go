package domain

import "context"

// UserRepository 用户仓储接口
type UserRepository interface {
	// Save 持久化新用户，回填自增 ID
	Save(ctx context.Context, user *User) error
	// GetByEmail 按邮箱查找，不存在时返回 (nil, nil)
	GetByEmail(ctx context.Context, email string) (*User, error)
	// GetByID 按 ID 查找，不存在时返回 (nil, nil)
	GetByID(ctx context.Context, id uint) (*User, error)
	// UpdateProfile 更新姓名与电话
	UpdateProfile(ctx context.Context, id uint, name, phone string) error
}
