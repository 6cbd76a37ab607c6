package database

import (
	"HospitalMgmt/config"
	"HospitalMgmt/logger"
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

type RedisConfig struct {
	URL          string
	PoolSize     int
	DialTimeout  time.Duration
	MinIdleConns int
	ReadTimeout  time.Duration
	MaxRetries   int
}

// RedisConfigFrom extracts the Redis settings from the application config.
func RedisConfigFrom(cfg *config.AppConfig) RedisConfig {
	return RedisConfig{
		URL:          cfg.RedisAddress,
		PoolSize:     cfg.RedisPoolSize,
		DialTimeout:  cfg.RedisDialTimeout,
		MinIdleConns: cfg.RedisMinIdleConns,
		ReadTimeout:  cfg.RedisReadTimeout,
		MaxRetries:   cfg.RedisMaxRetries,
	}
}

// NewRedisClient creates a Redis client with the provided configuration
func NewRedisClient(config RedisConfig) (*redis.Client, error) {
	opt, err := redis.ParseURL(config.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %w", err)
	}

	opt.PoolSize = config.PoolSize
	opt.MinIdleConns = config.MinIdleConns
	opt.DialTimeout = config.DialTimeout
	opt.ReadTimeout = config.ReadTimeout
	opt.MaxRetries = config.MaxRetries

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to ping Redis server: %w", err)
	}

	logger.Log.WithFields(logrus.Fields{
		"pool_size":      config.PoolSize,
		"min_idle_conns": config.MinIdleConns,
		"dial_timeout":   config.DialTimeout.String(),
		"read_timeout":   config.ReadTimeout.String(),
		"max_retries":    config.MaxRetries,
	}).Info("Redis client initialized")
	return client, nil
}

// MonitorRedisPool logs the connection pool statistics for monitoring
func MonitorRedisPool(client *redis.Client) {
	stats := client.PoolStats()
	logger.Log.WithFields(logrus.Fields{
		"total": stats.TotalConns,
		"idle":  stats.IdleConns,
		"stale": stats.StaleConns,
	}).Info("Redis pool stats")
}
