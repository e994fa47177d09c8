package redis

import (
	"context"
	"encoding/json"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	availableDatesKey = "booking:dates"
	availableDatesTTL = 5 * time.Minute
)

// Cache holds the hot available-dates set so the public date picker does
// not hit Postgres on every page load. Every method is a no-op when Redis
// is not configured, and degrades to the database on any Redis error.
type Cache struct {
	client *redis.Client
}

// New connects to Redis using REDIS_ADDR. A missing address disables
// caching rather than failing startup.
func New() *Cache {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, available-dates caching disabled")
		return &Cache{}
	}

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})

	if _, err := client.Ping(context.Background()).Result(); err != nil {
		log.Printf("Failed to connect to Redis, caching disabled: %v", err)
		return &Cache{}
	}
	log.Println("✅ Connected to Redis")
	return &Cache{client: client}
}

// GetAvailableDates returns the cached dates set, if present.
func (c *Cache) GetAvailableDates(ctx context.Context) ([]time.Time, bool) {
	if c.client == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, availableDatesKey).Result()
	if err != nil {
		return nil, false
	}
	var dates []time.Time
	if err := json.Unmarshal([]byte(raw), &dates); err != nil {
		return nil, false
	}
	return dates, true
}

func (c *Cache) SetAvailableDates(ctx context.Context, dates []time.Time) {
	if c.client == nil {
		return
	}
	raw, err := json.Marshal(dates)
	if err != nil {
		return
	}
	if err := c.client.Set(ctx, availableDatesKey, raw, availableDatesTTL).Err(); err != nil {
		log.Printf("Failed to cache available dates: %v", err)
	}
}

// InvalidateAvailableDates drops the cached set. Called after every claim
// and owner edit so visitors never see a stale date picker.
func (c *Cache) InvalidateAvailableDates(ctx context.Context) {
	if c.client == nil {
		return
	}
	if err := c.client.Del(ctx, availableDatesKey).Err(); err != nil {
		log.Printf("Failed to invalidate available dates: %v", err)
	}
}
