package user

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/xiebiao/online-bookstore/pkg/errors"
	"github.com/xiebiao/online-bookstore/pkg/jwt"
)

type memRepo struct {
	mu     sync.Mutex
	nextID uint
	users  map[string]*User
}

func newMemRepo() *memRepo {
	return &memRepo{users: make(map[string]*User)}
}

func (r *memRepo) Create(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	r.nextID++
	u.ID = r.nextID
	r.users[u.Email] = u
	return nil
}

func (r *memRepo) FindByID(_ context.Context, id uint) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memRepo) FindByEmail(_ context.Context, email string) (*User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

func (r *memRepo) Update(_ context.Context, u *User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.Email] = u
	return nil
}

func TestService_Register(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceWithCost(newMemRepo(), bcrypt.MinCost)

	t.Run("注册成功", func(t *testing.T) {
		u, err := svc.Register(ctx, RegisterParams{
			Name:     "张三",
			Email:    " ZhangSan@Example.com ",
			Password: "password123",
			Phone:    "13800000000",
		})
		require.NoError(t, err)
		assert.Equal(t, "zhangsan@example.com", u.Email)
		assert.Equal(t, jwt.RoleUser, u.Role)
		assert.NotEqual(t, "password123", u.Password)
	})

	t.Run("邮箱重复", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{Name: "李四", Email: "zhangsan@example.com", Password: "password123"})
		assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
	})

	cases := []struct {
		name   string
		params RegisterParams
	}{
		{"邮箱格式错误", RegisterParams{Name: "王五", Email: "not-an-email", Password: "password123"}},
		{"密码太短", RegisterParams{Name: "王五", Email: "w@example.com", Password: "a1"}},
		{"密码缺少数字", RegisterParams{Name: "王五", Email: "w@example.com", Password: "passwordonly"}},
		{"姓名太短", RegisterParams{Name: "王", Email: "w@example.com", Password: "password123"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.params)
			require.Error(t, err)
			appErr := apperrors.GetAppError(err)
			assert.Equal(t, 400, appErr.HTTPStatus())
		})
	}
}

func TestService_Login(t *testing.T) {
	ctx := context.Background()
	svc := NewServiceWithCost(newMemRepo(), bcrypt.MinCost)
	_, err := svc.Register(ctx, RegisterParams{Name: "张三", Email: "zs@example.com", Password: "password123"})
	require.NoError(t, err)

	t.Run("登录成功", func(t *testing.T) {
		u, err := svc.Login(ctx, "ZS@example.com", "password123")
		require.NoError(t, err)
		assert.Equal(t, "张三", u.Name)
	})

	t.Run("密码错误", func(t *testing.T) {
		_, err := svc.Login(ctx, "zs@example.com", "wrongpass1")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})

	t.Run("用户不存在与密码错误提示相同", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "password123")
		assert.ErrorIs(t, err, apperrors.ErrInvalidPassword)
	})
}

func TestService_SeedAdmin(t *testing.T) {
	ctx := context.Background()
	repo := newMemRepo()
	svc := NewServiceWithCost(repo, bcrypt.MinCost)

	t.Run("新建管理员", func(t *testing.T) {
		u, created, err := svc.SeedAdmin(ctx, RegisterParams{Name: "管理员", Email: "admin@example.com", Password: "admin12345"})
		require.NoError(t, err)
		assert.True(t, created)
		assert.True(t, u.IsAdmin())
	})

	t.Run("已有用户提升为管理员", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterParams{Name: "普通用户", Email: "user@example.com", Password: "password123"})
		require.NoError(t, err)

		u, created, err := svc.SeedAdmin(ctx, RegisterParams{Name: "普通用户", Email: "user@example.com", Password: "newpass456"})
		require.NoError(t, err)
		assert.False(t, created)
		assert.True(t, u.IsAdmin())

		_, err = svc.Login(ctx, "user@example.com", "newpass456")
		assert.NoError(t, err)
	})
}
