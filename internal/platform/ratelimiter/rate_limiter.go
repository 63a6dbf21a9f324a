// Package ratelimiter は外部API呼び出しの頻度を制限します。
package ratelimiter

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"
)

// Limiter は呼び出し頻度を制限するインターフェースです。
type Limiter interface {
	// Wait は呼び出しが許可されるまでブロックします。ctx が先に終了した場合はエラーを返します。
	Wait(ctx context.Context) error
}

// RateLimiter は interval あたり limit 回までの呼び出しを許可するトークンバケットです。
// 複数goroutineから安全に使えます。
type RateLimiter struct {
	limiter *rate.Limiter
	limit   int
}

var _ Limiter = (*RateLimiter)(nil)

// NewRateLimiter は新しいRateLimiterのインスタンスを生成します。limit <= 0 は無制限です。
func NewRateLimiter(limit int, interval time.Duration) *RateLimiter {
	if limit <= 0 || interval <= 0 {
		return &RateLimiter{limiter: rate.NewLimiter(rate.Inf, 0)}
	}
	// 最大 limit 回まで連続で許可し、interval/limit ごとに1枠回復
	return &RateLimiter{
		limiter: rate.NewLimiter(rate.Every(interval/time.Duration(limit)), limit),
		limit:   limit,
	}
}

// Wait は枠が空くまで待機します。
func (rl *RateLimiter) Wait(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rl.limiter.Allow() {
		return nil
	}
	slog.Warn("rate limit reached, waiting", "limit", rl.limit)
	return rl.limiter.Wait(ctx)
}
