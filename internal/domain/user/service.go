package user

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
)

// DefaultBcryptCost 生产环境使用的bcrypt cost
const DefaultBcryptCost = 12

// Service 用户领域服务
// 1. 包含不属于单个实体的业务逻辑(密码加密、校验)
// 2. 依赖Repository接口,不依赖具体实现
type Service interface {
	// Register 用户注册,角色固定为普通用户
	Register(ctx context.Context, params RegisterParams) (*User, error)

	// Login 邮箱密码登录
	Login(ctx context.Context, email, password string) (*User, error)

	// ValidatePassword 验证密码
	ValidatePassword(hashedPassword, plainPassword string) error

	// SeedAdmin 按邮箱创建或更新管理员账号,返回是否新建
	SeedAdmin(ctx context.Context, params RegisterParams) (*User, bool, error)
}

// RegisterParams 注册参数
type RegisterParams struct {
	Name     string
	Email    string
	Password string
	Phone    string
}

type service struct {
	repo Repository
	cost int
}

// NewService 创建用户服务
func NewService(repo Repository) Service {
	return NewServiceWithCost(repo, DefaultBcryptCost)
}

// NewServiceWithCost 指定bcrypt cost创建用户服务(测试使用bcrypt.MinCost)
func NewServiceWithCost(repo Repository, cost int) Service {
	return &service{repo: repo, cost: cost}
}

// Register 用户注册
// 邮箱唯一性由数据库UNIQUE索引保证,Repository转换为ErrEmailDuplicate
func (s *service) Register(ctx context.Context, params RegisterParams) (*User, error) {
	hashed, err := s.checkAndHash(params)
	if err != nil {
		return nil, err
	}

	user := NewUser(params.Name, params.Email, hashed, params.Phone)
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login 用户登录
// 用户不存在和密码错误返回同一个错误,不暴露邮箱是否注册
func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidPassword
		}
		return nil, err
	}

	if err := s.ValidatePassword(user.Password, password); err != nil {
		return nil, err
	}
	return user, nil
}

// ValidatePassword 验证明文密码与哈希值是否匹配
func (s *service) ValidatePassword(hashedPassword, plainPassword string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(plainPassword))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return apperrors.ErrInvalidPassword
		}
		return apperrors.Wrap(err, "密码验证失败")
	}
	return nil
}

// SeedAdmin 初始化管理员
// 邮箱已存在则重置密码并提升为管理员,否则新建
func (s *service) SeedAdmin(ctx context.Context, params RegisterParams) (*User, bool, error) {
	hashed, err := s.checkAndHash(params)
	if err != nil {
		return nil, false, err
	}

	existing, err := s.repo.FindByEmail(ctx, NormalizeEmail(params.Email))
	switch {
	case err == nil:
		existing.Password = hashed
		existing.Name = strings.TrimSpace(params.Name)
		if params.Phone != "" {
			existing.Phone = strings.TrimSpace(params.Phone)
		}
		existing.PromoteToAdmin()
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, false, err
		}
		return existing, false, nil
	case errors.Is(err, apperrors.ErrUserNotFound):
		admin := NewUser(params.Name, params.Email, hashed, params.Phone)
		admin.PromoteToAdmin()
		if err := s.repo.Create(ctx, admin); err != nil {
			return nil, false, err
		}
		return admin, true, nil
	default:
		return nil, false, err
	}
}

func (s *service) checkAndHash(params RegisterParams) (string, error) {
	if !isValidEmail(NormalizeEmail(params.Email)) {
		return "", apperrors.New(apperrors.ErrCodeInvalidParams, "邮箱格式不正确")
	}
	if err := validatePasswordStrength(params.Password); err != nil {
		return "", err
	}
	if n := utf8.RuneCountInString(strings.TrimSpace(params.Name)); n < 2 || n > 50 {
		return "", apperrors.New(apperrors.ErrCodeInvalidParams, "姓名长度应为2-50个字符")
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(params.Password), s.cost)
	if err != nil {
		return "", apperrors.Wrap(err, "密码加密失败")
	}
	return string(hashed), nil
}

var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	letterRe     = regexp.MustCompile(`[a-zA-Z]`)
	digitRe      = regexp.MustCompile(`[0-9]`)
)

func isValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// validatePasswordStrength 8-20位,必须包含字母和数字
func validatePasswordStrength(password string) error {
	if len(password) < 8 || len(password) > 20 {
		return apperrors.ErrWeakPassword
	}
	if !letterRe.MatchString(password) || !digitRe.MatchString(password) {
		return apperrors.ErrWeakPassword
	}
	return nil
}
