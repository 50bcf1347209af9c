package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const probeKeyPrefix = "bookshelf:token-probe:"

// ProbeCounter counts rejected bearer tokens per client in fixed Redis
// windows. It only counts; nothing is locked out.
type ProbeCounter struct {
	redis     redis.UniversalClient
	window    time.Duration
	threshold int64
}

func NewProbeCounter(client redis.UniversalClient, window time.Duration, threshold int) *ProbeCounter {
	return &ProbeCounter{redis: client, window: window, threshold: int64(threshold)}
}

// Record counts one rejected token for client and reports whether the
// window's count is above the threshold.
func (p *ProbeCounter) Record(ctx context.Context, client string) (int64, bool, error) {
	key := probeKeyPrefix + client
	count, err := p.redis.Incr(ctx, key).Result()
	if err != nil {
		return 0, false, fmt.Errorf("incr probe counter: %w", err)
	}
	// first hit opens the window
	if count == 1 {
		if err := p.redis.Expire(ctx, key, p.window).Err(); err != nil {
			return 0, false, fmt.Errorf("expire probe counter: %w", err)
		}
	}
	return count, p.threshold > 0 && count > p.threshold, nil
}

// Count returns the rejections recorded for client in the current window.
func (p *ProbeCounter) Count(ctx context.Context, client string) (int64, error) {
	count, err := p.redis.Get(ctx, probeKeyPrefix+client).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("get probe counter: %w", err)
	}
	return count, nil
}
