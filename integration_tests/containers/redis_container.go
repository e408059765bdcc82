package containers

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

// SetupRedisContainer starts a Redis testcontainer and returns it with its host:port address.
func SetupRedisContainer(ctx context.Context) (*redis.RedisContainer, string, error) {
	redisContainer, err := redis.Run(ctx,
		"redis:7-alpine",
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		return nil, "", fmt.Errorf("failed to start redis container: %w", err)
	}

	addr, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		if terminateErr := redisContainer.Terminate(ctx); terminateErr != nil {
			log.Printf("Failed to terminate redis container: %v", terminateErr)
		}
		return nil, "", fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	log.Printf("Redis container started and ready. Address: %s", addr)
	return redisContainer, addr, nil
}
