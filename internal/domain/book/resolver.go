package book

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Resolve 双键查询图书
// 1. ref是合法UUID时先按主键查
// 2. 未命中再按旧数字编号查
// 两种编号的历史数据并存,所有按编号定位图书的地方都走这里
func Resolve(ctx context.Context, f Finder, ref string) (*Book, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, ErrBookNotFound
	}

	if _, err := uuid.Parse(ref); err == nil {
		b, err := f.FindByID(ctx, ref)
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, ErrBookNotFound) {
			return nil, err
		}
	}

	legacyID, err := strconv.ParseInt(ref, 10, 64)
	if err != nil || legacyID <= 0 {
		return nil, ErrBookNotFound
	}

	return f.FindByLegacyID(ctx, legacyID)
}
