package user

import (
	"context"

	"github.com/xiebiao/online-bookstore/internal/domain/user"
)

// GetProfileUseCase 当前用户信息
type GetProfileUseCase struct {
	repo user.Repository
}

// NewGetProfileUseCase 创建用户信息用例
func NewGetProfileUseCase(repo user.Repository) *GetProfileUseCase {
	return &GetProfileUseCase{repo: repo}
}

// Execute 按ID查询用户,Token中的用户已被删除时返回ErrUserNotFound
func (uc *GetProfileUseCase) Execute(ctx context.Context, userID uint) (*UserInfo, error) {
	u, err := uc.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	info := toUserInfo(u)
	return &info, nil
}
