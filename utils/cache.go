package utils

import (
	"context"
	"log"
	"time"

	"tabletalk/config"

	"github.com/go-redis/redis/v8"
)

// DialogueCacheClient is the Redis client backing per-session dialogue state.
var DialogueCacheClient *redis.Client

// InitDialogueCache initializes the Redis client for dialogue state.
func InitDialogueCache() {
	DialogueCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisDialogueDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := DialogueCacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Dialogue Cache): %v", err)
	}
}

// GetDialogueCacheClient returns the Redis client for dialogue state.
func GetDialogueCacheClient() *redis.Client {
	if DialogueCacheClient == nil {
		InitDialogueCache()
	}
	return DialogueCacheClient
}
