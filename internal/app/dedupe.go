package app

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCompletionDeduper implements distributed completion-event
// deduplication using Redis. The first publisher of a (payment id, status)
// pair claims the key; replays within the TTL window are reported as
// duplicates. Keys expire so redelivery storms cannot grow the keyspace
// unbounded.
type RedisCompletionDeduper struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
}

func NewRedisCompletionDeduper(client redis.UniversalClient, prefix string, ttl time.Duration) *RedisCompletionDeduper {
	trimmedPrefix := strings.TrimSpace(prefix)
	if trimmedPrefix == "" {
		trimmedPrefix = "fcg:payments:completed"
	}
	trimmedPrefix = strings.TrimSuffix(trimmedPrefix, ":")

	if ttl <= 0 {
		ttl = 24 * time.Hour
	}

	return &RedisCompletionDeduper{
		client: client,
		prefix: trimmedPrefix,
		ttl:    ttl,
	}
}

// FirstPublish reports whether this is the first completion publish for the
// given payment id and terminal status.
func (r *RedisCompletionDeduper) FirstPublish(ctx context.Context, paymentID, status string) (bool, error) {
	if r == nil || r.client == nil {
		return true, nil
	}

	normalizedID := strings.TrimSpace(paymentID)
	normalizedStatus := strings.TrimSpace(strings.ToLower(status))
	if normalizedID == "" || normalizedStatus == "" {
		return true, nil
	}

	key := fmt.Sprintf("%s:%s:%s", r.prefix, normalizedID, normalizedStatus)
	claimed, err := r.client.SetNX(ctx, key, 1, r.ttl).Result()
	if err != nil {
		return true, err
	}
	return claimed, nil
}
