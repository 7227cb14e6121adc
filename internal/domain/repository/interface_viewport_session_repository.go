package repository

import (
	"context"
	"errors"

	"PestPro-App/internal/domain/model"
)

// ErrSessionNotFound セッションが存在しない、または期限切れ
var ErrSessionNotFound = errors.New("セッションが見つかりません")

// ViewportSessionRepository クライアントごとのビューポート状態を保持する
type ViewportSessionRepository interface {
	Save(ctx context.Context, sessionID string, viewport model.Viewport) error
	Get(ctx context.Context, sessionID string) (*model.Viewport, error)
}
