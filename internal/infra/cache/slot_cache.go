package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/BruksfildServices01/booking-api/internal/domain/slot"
	"github.com/BruksfildServices01/booking-api/internal/metrics"
)

// SlotCache stores computed availability per employee and day in one hash,
// one field per service duration, so a single DEL invalidates the day.
type SlotCache struct {
	client *redis.Client
	ttl    time.Duration
	log    zerolog.Logger
}

func NewSlotCache(client *redis.Client, ttl time.Duration, log zerolog.Logger) *SlotCache {
	return &SlotCache{client: client, ttl: ttl, log: log}
}

func key(employeeID uint, date string) string {
	return fmt.Sprintf("slots:%d:%s", employeeID, date)
}

func (c *SlotCache) Get(ctx context.Context, employeeID uint, date string, duration int) ([]slot.TimeSlot, bool) {
	raw, err := c.client.HGet(ctx, key(employeeID, date), strconv.Itoa(duration)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.log.Warn().Err(err).Msg("slot cache read")
		}
		metrics.RecordSlotCache(false)
		return nil, false
	}

	var slots []slot.TimeSlot
	if err := json.Unmarshal(raw, &slots); err != nil {
		metrics.RecordSlotCache(false)
		return nil, false
	}

	metrics.RecordSlotCache(true)
	return slots, true
}

func (c *SlotCache) Set(ctx context.Context, employeeID uint, date string, duration int, slots []slot.TimeSlot) {
	raw, err := json.Marshal(slots)
	if err != nil {
		return
	}

	k := key(employeeID, date)
	pipe := c.client.TxPipeline()
	pipe.HSet(ctx, k, strconv.Itoa(duration), raw)
	pipe.Expire(ctx, k, c.ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		c.log.Warn().Err(err).Msg("slot cache write")
	}
}

func (c *SlotCache) Invalidate(ctx context.Context, employeeID uint, date string) {
	if err := c.client.Del(ctx, key(employeeID, date)).Err(); err != nil {
		c.log.Warn().Err(err).Str("date", date).Uint("employee_id", employeeID).Msg("slot cache invalidate")
	}
}

// Noop never hits.
type Noop struct{}

func (Noop) Get(context.Context, uint, string, int) ([]slot.TimeSlot, bool) { return nil, false }
func (Noop) Set(context.Context, uint, string, int, []slot.TimeSlot)         {}
func (Noop) Invalidate(context.Context, uint, string)                       {}
