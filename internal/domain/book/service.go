package book

import (
	"context"
	"errors"
)

// Service 图书领域服务接口
// 1. 所有按编号定位图书的操作都支持UUID和旧数字编号
// 2. 不依赖具体的Repository实现(依赖倒置)
type Service interface {
	// Create 新建图书,旧编号不能重复
	Create(ctx context.Context, params CreateParams) (*Book, error)

	// Get 按UUID或旧编号查询
	Get(ctx context.Context, ref string) (*Book, error)

	// List 查询图书列表
	List(ctx context.Context, params ListParams) ([]*Book, error)

	// Update 部分更新图书
	Update(ctx context.Context, ref string, patch Patch) (*Book, error)

	// Delete 删除图书,返回被删除的图书
	Delete(ctx context.Context, ref string) (*Book, error)
}

type service struct {
	repo Repository
}

// NewService 创建图书领域服务
func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, params CreateParams) (*Book, error) {
	b, err := NewBook(params)
	if err != nil {
		return nil, err
	}

	if b.LegacyID != nil {
		if err := s.ensureLegacyIDFree(ctx, *b.LegacyID, ""); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Create(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Get(ctx context.Context, ref string) (*Book, error) {
	return Resolve(ctx, s.repo, ref)
}

func (s *service) List(ctx context.Context, params ListParams) ([]*Book, error) {
	return s.repo.List(ctx, params)
}

func (s *service) Update(ctx context.Context, ref string, patch Patch) (*Book, error) {
	b, err := Resolve(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}

	if patch.LegacyID != nil && (b.LegacyID == nil || *b.LegacyID != *patch.LegacyID) {
		if err := s.ensureLegacyIDFree(ctx, *patch.LegacyID, b.ID); err != nil {
			return nil, err
		}
	}

	if err := b.Apply(patch); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Delete(ctx context.Context, ref string) (*Book, error) {
	b, err := Resolve(ctx, s.repo, ref)
	if err != nil {
		return nil, err
	}

	if err := s.repo.Delete(ctx, b.ID); err != nil {
		return nil, err
	}
	return b, nil
}

// ensureLegacyIDFree 旧编号被其他图书占用时返回ErrLegacyIDDuplicate
// 唯一索引兜底并发写入
func (s *service) ensureLegacyIDFree(ctx context.Context, legacyID int64, selfID string) error {
	existing, err := s.repo.FindByLegacyID(ctx, legacyID)
	if err != nil {
		if errors.Is(err, ErrBookNotFound) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return ErrLegacyIDDuplicate
	}
	return nil
}
