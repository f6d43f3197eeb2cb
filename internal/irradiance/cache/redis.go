package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"solar_potential_backend/internal/irradiance/transport"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "irradiance:v1:"

// Redis shares cached entries across API instances.
type Redis struct {
	client redis.UniversalClient
}

// NewRedis wraps an existing client.
func NewRedis(client redis.UniversalClient) *Redis {
	return &Redis{client: client}
}

// NewRedisFromURL parses a redis:// or rediss:// URL and verifies connectivity.
func NewRedisFromURL(ctx context.Context, redisURL string) (*Redis, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return &Redis{client: client}, nil
}

// Get reads and decodes the entry for key.
func (r *Redis) Get(ctx context.Context, key Key) (transport.IrradianceData, bool, error) {
	raw, err := r.client.Get(ctx, redisKeyPrefix+key.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return transport.IrradianceData{}, false, nil
	}
	if err != nil {
		return transport.IrradianceData{}, false, err
	}

	var data transport.IrradianceData
	if err := json.Unmarshal(raw, &data); err != nil {
		return transport.IrradianceData{}, false, fmt.Errorf("decode cached irradiance: %w", err)
	}
	return data, true, nil
}

// Set writes the entry with an expiry.
func (r *Redis) Set(ctx context.Context, key Key, data transport.IrradianceData, ttl time.Duration) error {
	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, redisKeyPrefix+key.String(), raw, ttl).Err()
}

// Ping checks connectivity for readiness probes.
func (r *Redis) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

// Close releases the underlying client.
func (r *Redis) Close() error {
	return r.client.Close()
}
