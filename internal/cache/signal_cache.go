package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"teampulse/internal/model"
)

// SignalCache keeps the latest signal per member in Redis so dashboards and
// the alert scan avoid a Mongo sort on every read. The store remains the
// source of truth; a miss falls back to the repository.
type SignalCache interface {
	GetLatest(ctx context.Context, memberID string) (*model.Signal, error)
	SetLatest(ctx context.Context, signal *model.Signal) error
}

type signalCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSignalCache creates a new signal cache
func NewSignalCache(client *redis.Client) SignalCache {
	return &signalCache{
		client: client,
		ttl:    24 * time.Hour,
	}
}

func (c *signalCache) latestKey(memberID string) string {
	return fmt.Sprintf("member:%s:signal:latest", memberID)
}

func (c *signalCache) GetLatest(ctx context.Context, memberID string) (*model.Signal, error) {
	data, err := c.client.Get(ctx, c.latestKey(memberID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var signal model.Signal
	if err := json.Unmarshal([]byte(data), &signal); err != nil {
		return nil, err
	}
	return &signal, nil
}

func (c *signalCache) SetLatest(ctx context.Context, signal *model.Signal) error {
	data, err := json.Marshal(signal)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.latestKey(signal.MemberID), data, c.ttl).Err()
}
