// Package providers hosts the trending-tokens cache gate: a decision policy
// layered over an externally supplied key/value cache.
package providers

import (
	"context"
	"fmt"
	"time"

	"tw-agent/agent/internal/core"
	"tw-agent/agent/internal/services"
	"tw-agent/shared/logger"
)

// Cache TTLs by timeframe volatility: short windows go stale quickly.
const (
	shortWindowTTL = 60 * time.Second
	longWindowTTL  = 300 * time.Second
)

var shortWindows = map[string]bool{
	"5m": true, "15m": true, "30m": true, "1h": true,
}

// Params are the trending-query parameters pulled from a conversation by the
// structured-extraction capability. They must be validated before use.
type Params struct {
	Timeframe string `json:"timeframe"`
	Count     int    `json:"count"`
}

// Validate enforces the closed timeframe set and the count range.
func (p Params) Validate() error {
	if !services.IsValidTimeframe(p.Timeframe) {
		return fmt.Errorf("invalid trending params: timeframe %q", p.Timeframe)
	}
	if p.Count < 1 || p.Count > 20 {
		return fmt.Errorf("invalid trending params: count %d out of range", p.Count)
	}
	return nil
}

// ClampCount bounds a requested count to [1, 20].
func ClampCount(count int) int {
	if count < 1 {
		return 1
	}
	if count > 20 {
		return 20
	}
	return count
}

// TrendingFetcher is the slice of the market-data client the gate needs.
type TrendingFetcher interface {
	FetchTrendingTokens(ctx context.Context, timeframe string, count int) (*services.TrendingTokenSet, error)
}

// TrendingProvider serves trending-token sets through the cache. Entries are
// immutable once stored; a miss always fetches then stores. Concurrent
// misses for the same key may both fetch; that is accepted.
type TrendingProvider struct {
	client TrendingFetcher
	cache  core.CacheStore
	log    *logger.Logger
}

func NewTrendingProvider(client TrendingFetcher, cache core.CacheStore, log *logger.Logger) *TrendingProvider {
	return &TrendingProvider{client: client, cache: cache, log: log}
}

// Resolve returns the trending set for (timeframe, count), serving from the
// cache when possible. Count is clamped before it is used in either the key
// or the upstream call.
func (p *TrendingProvider) Resolve(ctx context.Context, timeframe string, count int) (*services.TrendingTokenSet, error) {
	count = ClampCount(count)
	key := fmt.Sprintf("trending-tokens-%s-%d", timeframe, count)

	if cached, ok := p.cache.Get(key); ok {
		if set, ok := cached.(*services.TrendingTokenSet); ok {
			p.log.Debug("Trending cache hit", "key", key)
			return set, nil
		}
	}

	p.log.Debug("Trending cache miss, fetching upstream", "key", key)
	set, err := p.client.FetchTrendingTokens(ctx, timeframe, count)
	if err != nil {
		return nil, err
	}

	ttl := longWindowTTL
	if shortWindows[timeframe] {
		ttl = shortWindowTTL
	}
	p.cache.Set(key, set, ttl)
	return set, nil
}
