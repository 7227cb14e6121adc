package repository

import (
	"context"
	"sync"
	"time"

	"PestPro-App/internal/domain/model"
	"PestPro-App/internal/domain/repository"
)

type memorySession struct {
	viewport model.Viewport
	expireAt time.Time
}

// MemoryViewportSessionRepository プロセス内にビューポート状態を保持する
type MemoryViewportSessionRepository struct {
	mu       sync.Mutex
	ttl      time.Duration
	sessions map[string]memorySession
	now      func() time.Time
}

// NewMemoryViewportSessionRepository 新しいインスタンスを作成（ttl<=0 で期限なし）
func NewMemoryViewportSessionRepository(ttl time.Duration) *MemoryViewportSessionRepository {
	return &MemoryViewportSessionRepository{
		ttl:      ttl,
		sessions: make(map[string]memorySession),
		now:      time.Now,
	}
}

var _ repository.ViewportSessionRepository = (*MemoryViewportSessionRepository)(nil)

func (r *MemoryViewportSessionRepository) Save(ctx context.Context, sessionID string, viewport model.Viewport) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := memorySession{viewport: viewport}
	if r.ttl > 0 {
		s.expireAt = r.now().Add(r.ttl)
	}
	r.sessions[sessionID] = s
	r.evictExpiredLocked()
	return nil
}

func (r *MemoryViewportSessionRepository) Get(ctx context.Context, sessionID string) (*model.Viewport, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, repository.ErrSessionNotFound
	}
	if r.expired(s) {
		delete(r.sessions, sessionID)
		return nil, repository.ErrSessionNotFound
	}

	v := s.viewport
	return &v, nil
}

func (r *MemoryViewportSessionRepository) expired(s memorySession) bool {
	return !s.expireAt.IsZero() && r.now().After(s.expireAt)
}

func (r *MemoryViewportSessionRepository) evictExpiredLocked() {
	for id, s := range r.sessions {
		if r.expired(s) {
			delete(r.sessions, id)
		}
	}
}
