package config

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// InitRedisServer connects to Redis and verifies the connection. Redis backs
// the filtered-query cache and the Asynq notification queue.
func InitRedisServer(ctx context.Context) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     GetEnvDefault("REDIS_ADDRESS", "localhost:6379"),
		Password: GetEnv("REDIS_PASSWORD"),
		DB:       0,
	})

	_, err := client.Ping(ctx).Result()
	if err != nil {
		panic(err)
	}

	return client
}
