package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Supported values for ASSET_BACKEND.
const (
	BackendFile  = "file"
	BackendS3    = "s3"
	BackendRedis = "redis"
)

type Config struct {
	DatabaseURL    string
	HTTPListenAddr string
	LogLevel       string
	ServiceName    string
	CORSOrigins    []string

	// AssetBackend selects where character assets are kept: file, s3 or redis.
	AssetBackend string
	AssetDir     string
	// JSONMaxBytes bounds uploads of the json asset kind. Image kinds have
	// fixed ceilings.
	JSONMaxBytes int64

	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3Prefix    string
	S3AccessKey string
	S3SecretKey string

	RedisAddr     string
	RedisPassword string
	RedisDB       int
	RedisTLS      bool
	RedisTLSCert  string
	RedisTLSKey   string
	RedisTLSCA    string
}

func Load() (*Config, error) {
	origins := getEnv("CORS_ORIGINS", "*")
	var corsList []string
	for _, o := range strings.Split(origins, ",") {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			corsList = append(corsList, trimmed)
		}
	}

	jsonMax, err := strconv.ParseInt(getEnv("ASSET_JSON_MAX_BYTES", "1048576"), 10, 64)
	if err != nil {
		return nil, fmt.Errorf("parse ASSET_JSON_MAX_BYTES: %w", err)
	}
	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_DB: %w", err)
	}

	cfg := &Config{
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		HTTPListenAddr: getEnv("HTTP_LISTEN_ADDR", ":8080"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		ServiceName:    getEnv("SERVICE_NAME", "garrison-api"),
		CORSOrigins:    corsList,
		AssetBackend:   strings.ToLower(getEnv("ASSET_BACKEND", BackendFile)),
		AssetDir:       getEnv("ASSET_DIR", "data/assets"),
		JSONMaxBytes:   jsonMax,
		S3Endpoint:     getEnv("S3_ENDPOINT", ""),
		S3Region:       getEnv("S3_REGION", "us-east-1"),
		S3Bucket:       getEnv("S3_BUCKET", ""),
		S3Prefix:       getEnv("S3_PREFIX", ""),
		S3AccessKey:    getEnv("S3_ACCESS_KEY", ""),
		S3SecretKey:    getEnv("S3_SECRET_KEY", ""),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        redisDB,
		RedisTLS:       strings.EqualFold(getEnv("REDIS_TLS", ""), "true"),
		RedisTLSCert:   getEnv("REDIS_TLS_CERT", ""),
		RedisTLSKey:    getEnv("REDIS_TLS_KEY", ""),
		RedisTLSCA:     getEnv("REDIS_TLS_CA_CERT", ""),
	}

	return cfg, nil
}

// Validate checks that the fields needed by the API server are present and
// consistent with the selected asset backend.
func (c *Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.HTTPListenAddr == "" {
		missing = append(missing, "HTTP_LISTEN_ADDR")
	}

	switch c.AssetBackend {
	case BackendFile:
		if c.AssetDir == "" {
			missing = append(missing, "ASSET_DIR")
		}
	case BackendS3:
		if c.S3Bucket == "" {
			missing = append(missing, "S3_BUCKET")
		}
		if c.S3Region == "" {
			missing = append(missing, "S3_REGION")
		}
	case BackendRedis:
		if c.RedisAddr == "" {
			missing = append(missing, "REDIS_ADDR")
		}
	default:
		return fmt.Errorf("unknown ASSET_BACKEND %q (want file, s3 or redis)", c.AssetBackend)
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required config: %s", strings.Join(missing, ", "))
	}

	if c.JSONMaxBytes <= 0 {
		return fmt.Errorf("ASSET_JSON_MAX_BYTES must be positive")
	}
	if (c.S3AccessKey == "") != (c.S3SecretKey == "") {
		return fmt.Errorf("S3_ACCESS_KEY and S3_SECRET_KEY must both be set")
	}
	if (c.RedisTLSCert == "") != (c.RedisTLSKey == "") {
		return fmt.Errorf("REDIS_TLS_CERT and REDIS_TLS_KEY must both be set")
	}

	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
