package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xiebiao/bookreview/internal/domain/user"
	apperrors "github.com/xiebiao/bookreview/pkg/errors"
)

// TestUserStore 用户存储
func TestUserStore(t *testing.T) {
	ctx := context.Background()

	t.Run("创建后可查到", func(t *testing.T) {
		store := NewUserStore()

		err := store.Create(ctx, user.NewUser("alice", "secret"))
		require.NoError(t, err)

		u, err := store.FindByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, "alice", u.Username)
		assert.True(t, u.MatchPassword("secret"))
	})

	t.Run("重复用户名拒绝", func(t *testing.T) {
		store := NewUserStore()

		require.NoError(t, store.Create(ctx, user.NewUser("alice", "secret")))

		err := store.Create(ctx, user.NewUser("alice", "other"))
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUserDuplicate, apperrors.GetAppError(err).Code)
	})

	t.Run("未注册用户查不到", func(t *testing.T) {
		store := NewUserStore()

		_, err := store.FindByUsername(ctx, "nobody")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUserNotFound, apperrors.GetAppError(err).Code)
	})
}

// TestSessionStore 会话注册表
func TestSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("保存后可解析用户名", func(t *testing.T) {
		store := NewSessionStore()

		require.NoError(t, store.Save(ctx, "token-1", "alice", 0))

		username, err := store.Username(ctx, "token-1")
		require.NoError(t, err)
		assert.Equal(t, "alice", username)
	})

	t.Run("未知凭证视为未登录", func(t *testing.T) {
		store := NewSessionStore()

		_, err := store.Username(ctx, "unknown")
		require.Error(t, err)
		assert.Equal(t, apperrors.ErrCodeUnauthenticated, apperrors.GetAppError(err).Code)
	})

	t.Run("删除即吊销", func(t *testing.T) {
		store := NewSessionStore()

		require.NoError(t, store.Save(ctx, "token-1", "alice", 0))
		require.NoError(t, store.Delete(ctx, "token-1"))

		_, err := store.Username(ctx, "token-1")
		require.Error(t, err)
	})

	t.Run("删除不存在的凭证不报错", func(t *testing.T) {
		store := NewSessionStore()
		assert.NoError(t, store.Delete(ctx, "unknown"))
	})
}
