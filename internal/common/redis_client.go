package common

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(host, port, password string) *redis.Client {
	addr := fmt.Sprintf("%s:%s", host, port)
	log.Printf("[Redis] Initializing Redis client: addr=%s", addr)

	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		// Keep the client, the pool reconnects on demand.
		log.Printf("[Redis] ERROR: Failed to ping Redis: %v", err)
		return client
	}

	log.Printf("[Redis] Successfully connected to Redis")
	return client
}
