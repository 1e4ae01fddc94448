package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/mcoot/doubles-roundrobin/internal/api"
	"github.com/mcoot/doubles-roundrobin/internal/factory"
	boltstorage "github.com/mcoot/doubles-roundrobin/internal/storage/bolt"
	pgstorage "github.com/mcoot/doubles-roundrobin/internal/storage/postgres"
	redisstorage "github.com/mcoot/doubles-roundrobin/internal/storage/redis"
)

// serverConfig is everything the server reads from its environment
type serverConfig struct {
	Factory     factory.Config
	Server      api.ServerConfig
	CORSOrigins []string
	LogLevel    slog.Level
}

// loadConfig reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func loadConfig() (*serverConfig, error) {
	_ = godotenv.Load()

	cfg := &serverConfig{
		Factory: factory.Config{StorageType: os.Getenv("STORAGE_TYPE")},
		Server:  api.DefaultServerConfig(),
	}
	cfg.Server.Host = os.Getenv("HOST")

	if portStr := os.Getenv("PORT"); portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT: %w", err)
		}
		if port <= 0 || port > 65535 {
			return nil, fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
		}
		cfg.Server.Port = port
	}

	if timeout := os.Getenv("SHUTDOWN_TIMEOUT"); timeout != "" {
		d, err := time.ParseDuration(timeout)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q: want a positive duration such as 10s", timeout)
		}
		cfg.Server.ShutdownTimeout = d
	}

	if level := os.Getenv("LOG_LEVEL"); level != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(level)); err != nil {
			return nil, fmt.Errorf("invalid LOG_LEVEL: %w", err)
		}
	}

	for _, origin := range strings.Split(os.Getenv("CORS_ORIGINS"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.CORSOrigins = append(cfg.CORSOrigins, origin)
		}
	}

	switch cfg.Factory.StorageType {
	case factory.StorageTypeRedis:
		redisURL := os.Getenv("REDIS_URL")
		if redisURL == "" {
			return nil, fmt.Errorf("REDIS_URL required when STORAGE_TYPE=redis")
		}
		redisCfg := redisstorage.DefaultConfig()
		redisCfg.URL = redisURL
		cfg.Factory.RedisConfig = &redisCfg
	case factory.StorageTypeBolt:
		boltCfg := boltstorage.DefaultConfig()
		if path := os.Getenv("BOLT_PATH"); path != "" {
			boltCfg.Path = path
		}
		cfg.Factory.BoltConfig = &boltCfg
	case factory.StorageTypePostgres:
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			return nil, fmt.Errorf("DATABASE_URL required when STORAGE_TYPE=postgres")
		}
		pgCfg := pgstorage.DefaultConfig()
		pgCfg.DSN = dsn
		cfg.Factory.PostgresConfig = &pgCfg
	}

	return cfg, nil
}
