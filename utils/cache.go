// File: smarttravel/utils/cache.go
package utils

import (
	"context"
	"log"
	"smarttravel/config"
	"time"

	"github.com/go-redis/redis/v8"
)

// CredCacheClient is the dedicated client for credential caching.
var CredCacheClient *redis.Client

// InitCredCache initializes the Redis client backing the shared
// credential store.
func InitCredCache() {
	CredCacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCredDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if _, err := CredCacheClient.Ping(ctx).Result(); err != nil {
		log.Fatalf("Failed to connect to Redis (Credential Cache): %v", err)
	}
}

// GetCredCacheClient returns the Redis client for credential caching.
func GetCredCacheClient() *redis.Client {
	if CredCacheClient == nil {
		InitCredCache()
	}
	return CredCacheClient
}
