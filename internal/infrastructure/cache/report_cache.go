package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	appreport "github.com/crmdesk/backend/internal/application/report"
	"github.com/crmdesk/backend/internal/domain/report"
	"github.com/redis/go-redis/v9"
)

const defaultReportPrefix = "report:crm:"

// RedisReportCache keeps assembled reports in Redis as JSON
type RedisReportCache struct {
	client    redis.UniversalClient
	keyPrefix string
}

// NewRedisReportCache creates a report cache on an existing Redis client
func NewRedisReportCache(client redis.UniversalClient, keyPrefix string) *RedisReportCache {
	if keyPrefix == "" {
		keyPrefix = defaultReportPrefix
	}
	return &RedisReportCache{client: client, keyPrefix: keyPrefix}
}

// Get returns the cached report, or nil on a miss
func (c *RedisReportCache) Get(ctx context.Context, key string) (*report.CRMReport, error) {
	raw, err := c.client.Get(ctx, c.keyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached report: %w", err)
	}

	var r report.CRMReport
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("failed to decode cached report: %w", err)
	}
	return &r, nil
}

// Set stores r under key for ttl
func (c *RedisReportCache) Set(ctx context.Context, key string, r *report.CRMReport, ttl time.Duration) error {
	raw, err := json.Marshal(r)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := c.client.Set(ctx, c.keyPrefix+key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache report: %w", err)
	}
	return nil
}

type reportEntry struct {
	report    report.CRMReport
	expiresAt time.Time
}

// InMemoryReportCache is a single-process report cache used when Redis is
// disabled. Expired entries are purged by a background sweep.
type InMemoryReportCache struct {
	mu        sync.RWMutex
	entries   map[string]reportEntry
	now       func() time.Time
	stopChan  chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// NewInMemoryReportCache creates the cache and starts its sweep goroutine
func NewInMemoryReportCache() *InMemoryReportCache {
	c := &InMemoryReportCache{
		entries:  make(map[string]reportEntry),
		now:      time.Now,
		stopChan: make(chan struct{}),
	}
	c.wg.Add(1)
	go c.cleanupLoop()
	return c
}

// Get returns a copy of the cached report, or nil on a miss
func (c *InMemoryReportCache) Get(_ context.Context, key string) (*report.CRMReport, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	e, ok := c.entries[key]
	if !ok || !c.now().Before(e.expiresAt) {
		return nil, nil
	}
	r := e.report
	return &r, nil
}

// Set stores a copy of r under key for ttl. A non-positive ttl is a no-op.
func (c *InMemoryReportCache) Set(_ context.Context, key string, r *report.CRMReport, ttl time.Duration) error {
	if r == nil || ttl <= 0 {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = reportEntry{report: *r, expiresAt: c.now().Add(ttl)}
	return nil
}

// Close stops the sweep goroutine. Safe to call multiple times.
func (c *InMemoryReportCache) Close() error {
	c.closeOnce.Do(func() {
		close(c.stopChan)
		c.wg.Wait()
	})
	return nil
}

// Size returns the number of stored entries, expired ones included
func (c *InMemoryReportCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

func (c *InMemoryReportCache) cleanupLoop() {
	defer c.wg.Done()

	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		case <-ticker.C:
			c.cleanup()
		}
	}
}

func (c *InMemoryReportCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for key, e := range c.entries {
		if !now.Before(e.expiresAt) {
			delete(c.entries, key)
		}
	}
}

var (
	_ appreport.Cache = (*RedisReportCache)(nil)
	_ appreport.Cache = (*InMemoryReportCache)(nil)
)
