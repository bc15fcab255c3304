package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"teampulse/internal/model"
)

// HealthCache caches team health snapshots with a short TTL; snapshots are
// recomputed from the signal store on miss.
type HealthCache interface {
	Get(ctx context.Context, teamID string) (*model.TeamHealth, error)
	Set(ctx context.Context, health *model.TeamHealth) error
}

type healthCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewHealthCache creates a new team health cache
func NewHealthCache(client *redis.Client) HealthCache {
	return &healthCache{
		client: client,
		ttl:    5 * time.Minute,
	}
}

func (c *healthCache) healthKey(teamID string) string {
	return fmt.Sprintf("team:%s:health", teamID)
}

func (c *healthCache) Get(ctx context.Context, teamID string) (*model.TeamHealth, error) {
	data, err := c.client.Get(ctx, c.healthKey(teamID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var health model.TeamHealth
	if err := json.Unmarshal([]byte(data), &health); err != nil {
		return nil, err
	}
	return &health, nil
}

func (c *healthCache) Set(ctx context.Context, health *model.TeamHealth) error {
	data, err := json.Marshal(health)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.healthKey(health.TeamID), data, c.ttl).Err()
}
