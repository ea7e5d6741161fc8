package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"myka/internal/http-api/models"
)

// NotificationCache keeps a per-user snapshot of scheduled notifications and
// the last known notification-permission status in Redis, so a restart can
// resume from the snapshot before the authoritative re-arm sweep completes.
type NotificationCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewNotificationCache connects and verifies the Redis instance.
func NewNotificationCache(addr, password string, ttl time.Duration) (*NotificationCache, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &NotificationCache{client: rdb, ttl: ttl}, nil
}

func (c *NotificationCache) key(userID string) string {
	return fmt.Sprintf("notify:user:%s", userID)
}

// SaveSnapshot writes the user's current notification list (upsert).
func (c *NotificationCache) SaveSnapshot(ctx context.Context, userID string, notifications []models.ScheduledNotification) error {
	if c == nil || c.client == nil {
		// No-op for testing/mock mode
		return nil
	}
	data, err := json.Marshal(notifications)
	if err != nil {
		return err
	}
	key := c.key(userID)
	fields := map[string]any{
		"snapshot":    string(data),
		"snapshot_at": time.Now().UTC().Format(time.RFC3339Nano),
	}
	if err := c.client.HSet(ctx, key, fields).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

// GetSnapshot returns the cached list, or nil when no snapshot exists.
func (c *NotificationCache) GetSnapshot(ctx context.Context, userID string) ([]models.ScheduledNotification, error) {
	if c == nil || c.client == nil {
		return nil, nil
	}
	fieldsMap, err := c.client.HGetAll(ctx, c.key(userID)).Result()
	if err != nil {
		return nil, err
	}
	raw, ok := fieldsMap["snapshot"]
	if !ok || raw == "" {
		return nil, nil
	}
	var notifications []models.ScheduledNotification
	if err := json.Unmarshal([]byte(raw), &notifications); err != nil {
		return nil, err
	}
	return notifications, nil
}

// SavePermission records the user's last known permission status
// (granted, denied, default).
func (c *NotificationCache) SavePermission(ctx context.Context, userID, status string) error {
	if c == nil || c.client == nil {
		return nil
	}
	key := c.key(userID)
	if err := c.client.HSet(ctx, key, "permission", status).Err(); err != nil {
		return err
	}
	return c.client.Expire(ctx, key, c.ttl).Err()
}

// GetPermission returns the cached status, or "default" when unknown.
func (c *NotificationCache) GetPermission(ctx context.Context, userID string) (string, error) {
	if c == nil || c.client == nil {
		return "default", nil
	}
	status, err := c.client.HGet(ctx, c.key(userID), "permission").Result()
	if err == redis.Nil {
		return "default", nil
	}
	if err != nil {
		return "default", err
	}
	return status, nil
}
