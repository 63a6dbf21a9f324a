// Package redis はRedisクライアントの生成を提供します。
package redis

import (
	"context"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"

	"company_intel/internal/platform/env"
)

// Config はRedis接続の設定を保持します。
type Config struct {
	Host     string
	Port     string
	Password string
	DB       int
	CacheTTL time.Duration // 検索結果キャッシュのTTL
}

// LoadConfig は環境変数からRedisの設定を読み込みます。
func LoadConfig() Config {
	return Config{
		Host:     env.Get("REDIS_HOST", ""),
		Port:     env.Get("REDIS_PORT", "6379"),
		Password: env.Get("REDIS_PASSWORD", ""),
		DB:       env.GetInt("REDIS_DB", 0),
		CacheTTL: env.GetDuration("SEARCH_CACHE_TTL", 10*time.Minute),
	}
}

// Enabled はRedisが設定されているかどうかを返します。
func (c Config) Enabled() bool { return c.Host != "" }

// Addr は host:port 形式のアドレスを返します。
func (c Config) Addr() string { return net.JoinHostPort(c.Host, c.Port) }

// NewRedisClient はRedisクライアントを生成し、接続を確認します。
func NewRedisClient(ctx context.Context, cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// 接続確認
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		slog.Error("Redis connection failed", "address", cfg.Addr(), "error", err)
		_ = rdb.Close()
		return nil, err
	}

	slog.Info("Redis connection successful", "address", cfg.Addr())
	return rdb, nil
}
