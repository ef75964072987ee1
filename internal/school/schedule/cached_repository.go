package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// CachedRepository is a read-through cache over a Repository. Single
// schedules are cached by id; list reads always hit the store since the
// timetable listing is cheap and pagination makes keys awkward.
type CachedRepository struct {
	inner  Repository
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

func NewCachedRepository(inner Repository, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{inner: inner, client: client, ttl: ttl, logger: logger}
}

func cacheKey(tenantID, id string) string {
	return "classcore:schedule:" + tenantID + ":" + id
}

func (r *CachedRepository) FindAll(ctx context.Context, tenantID string, offset, quantity int64) ([]*Schedule, error) {
	return r.inner.FindAll(ctx, tenantID, offset, quantity)
}

func (r *CachedRepository) FindByID(ctx context.Context, tenantID, id string) (*Schedule, error) {
	key := cacheKey(tenantID, id)

	cached, err := r.client.Get(ctx, key).Bytes()
	if err == nil {
		var s Schedule
		if err := json.Unmarshal(cached, &s); err == nil {
			return &s, nil
		}
		// Unreadable entry, fall through to the store.
		r.client.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		r.logger.Warn("schedule cache read failed", "key", key, "error", err)
	}

	s, err := r.inner.FindByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(s); err == nil {
		if err := r.client.Set(ctx, key, data, r.ttl).Err(); err != nil {
			r.logger.Warn("schedule cache write failed", "key", key, "error", err)
		}
	}
	return s, nil
}

func (r *CachedRepository) Invalidate(ctx context.Context, tenantID, id string) {
	if err := r.client.Del(ctx, cacheKey(tenantID, id)).Err(); err != nil {
		r.logger.Warn("schedule cache invalidation failed", "tenantId", tenantID, "scheduleId", id, "error", err)
	}
	r.inner.Invalidate(ctx, tenantID, id)
}
