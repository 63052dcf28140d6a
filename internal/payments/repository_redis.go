package payments

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisRegistry struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisRegistry stores pending payments as JSON values with a native TTL
// equal to the pending window. Redis drops stale records on its own, so
// ExpireStale is a no-op here; the observable behavior (expired reference ->
// not found) matches the memory registry.
func NewRedisRegistry(rdb *redis.Client, ttl time.Duration) Registry {
	return &redisRegistry{rdb: rdb, ttl: ttl}
}

func pendingKey(id string) string {
	return fmt.Sprintf("pay:pending:%s", id)
}

func (r *redisRegistry) Put(ctx context.Context, p PendingPayment) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return r.rdb.Set(ctx, pendingKey(p.ID), data, r.ttl).Err()
}

func (r *redisRegistry) Get(ctx context.Context, id string) (PendingPayment, bool, error) {
	val, err := r.rdb.Get(ctx, pendingKey(id)).Bytes()
	if err == redis.Nil {
		return PendingPayment{}, false, nil
	}
	if err != nil {
		return PendingPayment{}, false, err
	}

	var p PendingPayment
	if err := json.Unmarshal(val, &p); err != nil {
		return PendingPayment{}, false, err
	}
	return p, true, nil
}

func (r *redisRegistry) Remove(ctx context.Context, id string) error {
	return r.rdb.Del(ctx, pendingKey(id)).Err()
}

func (r *redisRegistry) ExpireStale(ctx context.Context, maxAge time.Duration) (int, error) {
	return 0, nil
}
