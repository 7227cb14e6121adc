package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
)

const sessionKeyPrefix = "countymap:viewport:"

// RedisViewportSessionRepository Redisにビューポート状態をTTL付きで保持する
type RedisViewportSessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisViewportSessionRepository 新しいインスタンスを作成
func NewRedisViewportSessionRepository(client *redis.Client, ttl time.Duration) repository.ViewportSessionRepository {
	return &RedisViewportSessionRepository{
		client: client,
		ttl:    ttl,
	}
}

func (r *RedisViewportSessionRepository) Save(ctx context.Context, sessionID string, viewport model.Viewport) error {
	data, err := json.Marshal(viewport)
	if err != nil {
		return fmt.Errorf("ビューポートのJSONマーシャル失敗: %w", err)
	}
	if err := r.client.Set(ctx, sessionKeyPrefix+sessionID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("セッションの保存に失敗: %w", err)
	}
	return nil
}

func (r *RedisViewportSessionRepository) Get(ctx context.Context, sessionID string) (*model.Viewport, error) {
	data, err := r.client.Get(ctx, sessionKeyPrefix+sessionID).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, repository.ErrSessionNotFound
		}
		return nil, fmt.Errorf("セッションの取得に失敗: %w", err)
	}

	var viewport model.Viewport
	if err := json.Unmarshal(data, &viewport); err != nil {
		return nil, fmt.Errorf("ビューポートのJSONアンマーシャル失敗: %w", err)
	}
	return &viewport, nil
}
