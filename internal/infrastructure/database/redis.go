package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisFromURL parses url, connects and pings Redis.
func NewRedisFromURL(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	log.Println("Successfully connected to Redis")
	return rdb, nil
}

// CloseRedis closes the Redis client.
func CloseRedis(rdb *redis.Client) {
	if err := rdb.Close(); err != nil {
		log.Printf("Error closing Redis connection: %v", err)
		return
	}
	log.Println("Redis connection closed")
}
