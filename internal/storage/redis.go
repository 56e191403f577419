package storage

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// RedisOptions configures the client used by RedisBackend.
type RedisOptions struct {
	Addr      string
	Password  string
	DB        int
	TLSConfig *tls.Config
}

// NewRedisClient connects to Redis and verifies the connection with a ping.
func NewRedisClient(ctx context.Context, opts RedisOptions) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:      opts.Addr,
		Password:  opts.Password,
		DB:        opts.DB,
		TLSConfig: opts.TLSConfig,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opts.Addr, err)
	}
	return client, nil
}

// RedisBackend stores each object as a single Redis string. SET replaces the
// value atomically.
type RedisBackend struct {
	client *redis.Client
	prefix string
	logger zerolog.Logger
}

// NewRedisBackend wraps an existing client.
func NewRedisBackend(client *redis.Client, prefix string, logger zerolog.Logger) *RedisBackend {
	return &RedisBackend{
		client: client,
		prefix: prefix,
		logger: logger.With().Str("component", "redis-backend").Logger(),
	}
}

// Open reads the whole value for key into memory.
func (b *RedisBackend) Open(ctx context.Context, key string) (*Object, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", key, err)
	}
	return &Object{Body: io.NopCloser(bytes.NewReader(data)), Size: int64(len(data))}, nil
}

// Put stores data under key with no expiry.
func (b *RedisBackend) Put(ctx context.Context, key string, data []byte, _ string) error {
	if err := b.client.Set(ctx, b.prefix+key, data, 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	b.logger.Debug().Str("key", key).Int("size", len(data)).Msg("stored object")
	return nil
}

func (b *RedisBackend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

func (b *RedisBackend) Close() error {
	return b.client.Close()
}

func (b *RedisBackend) Name() string {
	return "redis:" + b.client.Options().Addr
}
