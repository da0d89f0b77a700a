package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	UserKeyPrefix   = "user:%d"
	SwapKeyPrefix   = "swap:%d"
	AdminStatsKey   = "admin:stats"
	UserFeedbackAvg = "user:%d:rating"
)

const (
	UserTTL       = 5 * time.Minute
	SwapTTL       = 2 * time.Minute
	AdminStatsTTL = 30 * time.Second
	RatingTTL     = 5 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func SwapKey(swapID uint) string {
	return fmt.Sprintf(SwapKeyPrefix, swapID)
}

func UserRatingKey(userID uint) string {
	return fmt.Sprintf(UserFeedbackAvg, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
}

func InvalidateSwap(ctx context.Context, swapID uint) {
	Invalidate(ctx, SwapKey(swapID))
}

func InvalidateUserRating(ctx context.Context, userID uint) {
	Invalidate(ctx, UserRatingKey(userID))
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, AdminStatsKey)
}

// Aside implements a cache-aside read into dest. It tries Redis first and
// falls back to load on a miss or any cache error, then stores the loaded
// value with the TTL. A nil client degrades to a plain load.
func Aside(ctx context.Context, key string, dest interface{}, ttl time.Duration, load func() error) error {
	if client == nil {
		return load()
	}

	raw, err := client.Get(ctx, key).Result()
	if err == nil {
		if jsonErr := json.Unmarshal([]byte(raw), dest); jsonErr == nil {
			return nil
		}
		// Corrupt entry, drop it and fall through to the loader.
		client.Del(ctx, key)
	} else if err != redis.Nil {
		// Redis unavailable, serve from the source.
		return load()
	}

	if err := load(); err != nil {
		return err
	}

	if data, jsonErr := json.Marshal(dest); jsonErr == nil {
		client.Set(ctx, key, data, ttl)
	}
	return nil
}
