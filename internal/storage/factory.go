package storage

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/garrison-vtt/garrison/internal/config"
)

// New builds the backend selected by cfg.AssetBackend. Backends holding
// network connections implement io.Closer.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (Backend, error) {
	switch cfg.AssetBackend {
	case config.BackendFile:
		return NewFileBackend(cfg.AssetDir, logger)

	case config.BackendS3:
		return NewS3Backend(S3Options{
			Endpoint:  cfg.S3Endpoint,
			Region:    cfg.S3Region,
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		}, logger), nil

	case config.BackendRedis:
		tlsConfig, err := cfg.RedisTLSConfig()
		if err != nil {
			return nil, err
		}
		client, err := NewRedisClient(ctx, RedisOptions{
			Addr:      cfg.RedisAddr,
			Password:  cfg.RedisPassword,
			DB:        cfg.RedisDB,
			TLSConfig: tlsConfig,
		})
		if err != nil {
			return nil, err
		}
		return NewRedisBackend(client, "garrison:", logger), nil

	default:
		return nil, fmt.Errorf("unknown asset backend %q", cfg.AssetBackend)
	}
}
