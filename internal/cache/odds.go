// Package cache keeps provider responses in Redis between fetches so
// we stay inside The Odds API's monthly quota.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/XavierBriggs/tyche/pkg/models"
)

// TTL constants
const (
	OddsTTL  = 5 * time.Minute
	PropsTTL = 10 * time.Minute
)

// OddsCache handles reading and writing odds snapshots to Redis.
type OddsCache struct {
	client *redis.Client
}

// NewOddsCache creates a new odds cache.
func NewOddsCache(client *redis.Client) *OddsCache {
	return &OddsCache{
		client: client,
	}
}

func oddsKey(sport string) string {
	return fmt.Sprintf("odds:%s", sport)
}

func propsKey(sport, eventID string) string {
	return fmt.Sprintf("props:%s:%s", sport, eventID)
}

// GetOdds returns the cached snapshot for a sport, or nil on a miss.
// Cache errors count as misses so a Redis outage degrades to more
// provider calls rather than request failures.
func (c *OddsCache) GetOdds(ctx context.Context, sport string) *models.OddsSnapshot {
	data, err := c.client.Get(ctx, oddsKey(sport)).Bytes()
	if err != nil {
		return nil
	}

	var snap models.OddsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return &snap
}

// SetOdds stores a snapshot for a sport.
func (c *OddsCache) SetOdds(ctx context.Context, snap *models.OddsSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling snapshot: %w", err)
	}
	return c.client.Set(ctx, oddsKey(snap.Sport), data, OddsTTL).Err()
}

// GetProps returns the cached props for an event, or nil on a miss.
func (c *OddsCache) GetProps(ctx context.Context, sport, eventID string) *models.PropsSnapshot {
	data, err := c.client.Get(ctx, propsKey(sport, eventID)).Bytes()
	if err != nil {
		return nil
	}

	var snap models.PropsSnapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil
	}
	return &snap
}

// SetProps stores the props for an event.
func (c *OddsCache) SetProps(ctx context.Context, snap *models.PropsSnapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshaling props: %w", err)
	}
	return c.client.Set(ctx, propsKey(snap.Sport, snap.EventID), data, PropsTTL).Err()
}
