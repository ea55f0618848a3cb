package user

import (
	"strings"
	"time"

	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

// User 用户实体(聚合根)
// 1. 密码只保存bcrypt哈希值
// 2. Role决定能否访问管理接口,取值见jwt.RoleUser/jwt.RoleAdmin
// 3. 领域实体不带GORM tag,映射由infrastructure层完成
type User struct {
	ID        uint
	Name      string
	Email     string
	Password  string // bcrypt哈希值
	Phone     string
	Role      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewUser 创建普通用户(工厂方法)
// hashedPassword必须是bcrypt加密后的密码
func NewUser(name, email, hashedPassword, phone string) *User {
	now := time.Now()
	return &User{
		Name:      strings.TrimSpace(name),
		Email:     NormalizeEmail(email),
		Password:  hashedPassword,
		Phone:     strings.TrimSpace(phone),
		Role:      jwt.RoleUser,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsAdmin 是否管理员
func (u *User) IsAdmin() bool {
	return u.Role == jwt.RoleAdmin
}

// PromoteToAdmin 提升为管理员
func (u *User) PromoteToAdmin() {
	u.Role = jwt.RoleAdmin
	u.UpdatedAt = time.Now()
}

// NormalizeEmail 邮箱统一小写去空格,注册和登录保持一致
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
