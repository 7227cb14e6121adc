package repository

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/paulmach/orb"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return mr, client
}

func TestRedisViewportSessionRepository(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestRedis(t)
	repo := NewRedisViewportSessionRepository(client, 30*time.Minute)

	t.Run("保存したビューポートを取得できる", func(t *testing.T) {
		v := model.Viewport{
			Center: orb.Point{-73.97, 40.78},
			Zoom:   model.FocusZoom,
			Mode:   model.ViewportFocused,
			Region: &model.RegionRef{ID: "36061", Name: "New York", StateName: "New York"},
		}
		require.NoError(t, repo.Save(ctx, "abc", v))
		assert.True(t, mr.Exists(sessionKeyPrefix+"abc"))
		assert.Equal(t, 30*time.Minute, mr.TTL(sessionKeyPrefix+"abc"))

		got, err := repo.Get(ctx, "abc")
		require.NoError(t, err)
		assert.Equal(t, v, *got)
	})

	t.Run("存在しないセッション", func(t *testing.T) {
		_, err := repo.Get(ctx, "missing")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("TTLを過ぎたセッションは取得できない", func(t *testing.T) {
		require.NoError(t, repo.Save(ctx, "old", model.OverviewViewport()))
		mr.FastForward(31 * time.Minute)

		_, err := repo.Get(ctx, "old")
		assert.ErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("壊れたデータはエラー", func(t *testing.T) {
		require.NoError(t, mr.Set(sessionKeyPrefix+"broken", "{not json"))
		_, err := repo.Get(ctx, "broken")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrSessionNotFound)
	})

	t.Run("Redisが停止していればエラー", func(t *testing.T) {
		down, downClient := newTestRedis(t)
		downRepo := NewRedisViewportSessionRepository(downClient, time.Minute)
		down.Close()

		err := downRepo.Save(ctx, "x", model.OverviewViewport())
		assert.Error(t, err)
		_, err = downRepo.Get(ctx, "x")
		assert.Error(t, err)
		assert.NotErrorIs(t, err, repository.ErrSessionNotFound)
	})
}
