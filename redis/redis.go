package redis

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	Client *redis.Client
	Ctx    = context.Background()
)

func InitRedis() {
	Client = redis.NewClient(&redis.Options{
		Addr: os.Getenv("REDIS_ADDR"),
		DB:   0,
	})

	// Test connection
	_, err := Client.Ping(Ctx).Result()
	if err != nil {
		panic(fmt.Sprintf("Failed to connect to Redis: %v", err))
	}
	fmt.Println("✅ Connected to Redis")
}

// Availability projections are cached per provider/date under a generation
// counter. Invalidation bumps the generation instead of scanning for keys, so
// stale entries simply expire.

func availabilityGenKey(providerID uint) string {
	return fmt.Sprintf("availability:gen:%d", providerID)
}

// AvailabilityKey returns the cache key for one provider/date projection.
func AvailabilityKey(providerID uint, date string) string {
	gen := int64(0)
	if Client != nil {
		gen, _ = Client.Get(Ctx, availabilityGenKey(providerID)).Int64()
	}
	return fmt.Sprintf("availability:%d:%d:%s", providerID, gen, date)
}

// InvalidateAvailability drops all cached projections for a provider.
func InvalidateAvailability(providerID uint) {
	if Client == nil {
		return
	}
	Client.Incr(Ctx, availabilityGenKey(providerID))
	Client.Expire(Ctx, availabilityGenKey(providerID), 24*time.Hour)
}
