package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// RedisOptions Redis接続設定
type RedisOptions struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// Addr host:port 形式のアドレス
func (o RedisOptions) Addr() string {
	return o.Host + ":" + o.Port
}

// NewRedisClient Redisクライアントを作成し、疎通確認を行う
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     opts.Addr(),
		Password: opts.Password,
		DB:       opts.DB,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("Redisへの接続に失敗 (%s): %w", opts.Addr(), err)
	}

	log.Printf("✅ Redis connection successful (%s, db=%d)", opts.Addr(), opts.DB)
	return client, nil
}
