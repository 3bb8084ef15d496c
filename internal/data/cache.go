package data

import (
	"context"
	"sync"
	"time"

	"github.com/nitishagar/bharatdcim/internal/model"
)

// Estimate is one bill estimate kept for later retrieval.
type Estimate struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	// RequestedState is what the caller asked for; State is the schedule
	// that was actually used.
	RequestedState string                   `json:"requested_state"`
	State          string                   `json:"state"`
	Matched        bool                     `json:"matched"`
	Path           string                   `json:"path"`
	Averaging      string                   `json:"averaging"`
	Profile        model.ConsumptionProfile `json:"profile"`
	Bill           model.BillBreakdown      `json:"bill"`
	Hourly         []model.HourlyRow        `json:"hourly,omitempty"`
	Warnings       []string                 `json:"warnings,omitempty"`
}

type cacheEntry struct {
	estimate  Estimate
	expiresAt time.Time
}

// EstimateCache keeps recent estimates in memory with a TTL. Nothing is
// written to disk. A nil cache stores nothing.
type EstimateCache struct {
	mu    sync.RWMutex
	store map[string]*cacheEntry
	ttl   time.Duration
	now   func() time.Time
}

// DefaultEstimateTTL is how long estimates stay retrievable.
const DefaultEstimateTTL = 1 * time.Hour

func NewEstimateCache(ttl time.Duration) *EstimateCache {
	if ttl <= 0 {
		ttl = DefaultEstimateTTL
	}
	return &EstimateCache{
		store: make(map[string]*cacheEntry),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Get retrieves an estimate if present and not expired.
func (c *EstimateCache) Get(id string) (Estimate, bool) {
	if c == nil {
		return Estimate{}, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists || c.now().After(entry.expiresAt) {
		return Estimate{}, false
	}
	return entry.estimate, true
}

// Set stores an estimate under its ID.
func (c *EstimateCache) Set(e Estimate) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[e.ID] = &cacheEntry{
		estimate:  e,
		expiresAt: c.now().Add(c.ttl),
	}
}

// Len counts stored entries, expired ones included until the next sweep.
func (c *EstimateCache) Len() int {
	if c == nil {
		return 0
	}
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries.
func (c *EstimateCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*cacheEntry)
}

// Sweep removes expired entries and returns how many were dropped.
func (c *EstimateCache) Sweep() int {
	if c == nil {
		return 0
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for key, entry := range c.store {
		if now.After(entry.expiresAt) {
			delete(c.store, key)
			n++
		}
	}
	return n
}

// Run sweeps expired entries every interval until ctx is done.
func (c *EstimateCache) Run(ctx context.Context, interval time.Duration) {
	if c == nil {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Sweep()
		}
	}
}
