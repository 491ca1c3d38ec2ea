// Package pricefeed owns the live quote table: on-demand resolution of asset
// prices from on-chain aggregator feeds, a background refresh loop, and the
// per-symbol fallback discipline. A resolution never fails a batch — each
// symbol independently degrades to its catalog fallback price.
package pricefeed

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/grant-engine/internal/adapters/evmrpc"
	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/config"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/metrics"
	"github.com/hxuan190/grant-engine/internal/services"
)

const PRICE_FEED_SERVICE = "price-feed-service"

var ErrNoSupportedAssets = errors.New("no supported assets requested")

// RoundReader reads the latest round of one price feed. Injectable so the
// service is testable without network access.
type RoundReader interface {
	LatestRound(ctx context.Context, feed catalog.Feed) (price float64, updatedAt time.Time, err error)
}

type Service struct {
	container.BaseDIInstance

	logger  *services.ServiceLogger
	cat     *catalog.Catalog
	reader  RoundReader
	refresh time.Duration
	timeout time.Duration

	mu     sync.RWMutex
	quotes map[string]domain.PricePoint

	done chan struct{}
	wg   sync.WaitGroup
}

func (svc *Service) ID() string {
	return PRICE_FEED_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.cat = c.GetConfig(config.CATALOG_CONFIG_KEY).(*config.CatalogConfig).Catalog
	rpcConf := c.GetConfig(config.RPC_CONFIG_KEY).(*config.RPCConfig)
	feedConf := c.GetConfig(config.FEED_CONFIG_KEY).(*config.FeedConfig)

	svc.timeout = time.Duration(rpcConf.TimeoutSeconds) * time.Second
	svc.refresh = time.Duration(feedConf.RefreshSeconds) * time.Second
	if svc.reader == nil {
		svc.reader = NewChainReader(evmrpc.New(svc.timeout))
	}
	svc.quotes = make(map[string]domain.PricePoint, len(svc.cat.Assets))
	svc.done = make(chan struct{})
	return nil
}

// SetReader swaps the round reader. Call before Start; used by tests.
func (svc *Service) SetReader(r RoundReader) {
	svc.reader = r
}

func (svc *Service) Start() error {
	svc.refreshAll()
	svc.wg.Add(1)
	go svc.loop()
	svc.logger.Info().Dur("interval", svc.refresh).Msg("price feed refresh loop started")
	return nil
}

func (svc *Service) Stop() error {
	close(svc.done)
	svc.wg.Wait()
	svc.logger.Info().Msg("price feed refresh loop stopped")
	return nil
}

func (svc *Service) loop() {
	defer svc.wg.Done()
	ticker := time.NewTicker(svc.refresh)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			svc.refreshAll()
		case <-svc.done:
			return
		}
	}
}

func (svc *Service) refreshAll() {
	ctx, cancel := context.WithTimeout(context.Background(), svc.timeout)
	defer cancel()
	if _, err := svc.Resolve(ctx, svc.cat.Symbols()); err != nil {
		svc.logger.Error().Err(err).Msg("quote refresh failed")
	}
}

// Resolve prices the requested symbols. Symbols are upper-cased, deduped and
// filtered against the catalog; an empty surviving set is the only error.
// Feeds are read concurrently and every failure degrades to the symbol's
// fallback price, tagged with the degradation source. Results also update the
// cached quote table.
func (svc *Service) Resolve(ctx context.Context, symbols []string) ([]domain.PricePoint, error) {
	valid := svc.normalize(symbols)
	if len(valid) == 0 {
		return nil, ErrNoSupportedAssets
	}

	points := make([]domain.PricePoint, len(valid))
	var wg sync.WaitGroup
	for i, symbol := range valid {
		wg.Add(1)
		go func(i int, symbol string) {
			defer wg.Done()
			points[i] = svc.resolveOne(ctx, symbol)
		}(i, symbol)
	}
	wg.Wait()

	svc.mu.Lock()
	for _, p := range points {
		svc.quotes[p.Symbol] = p
	}
	svc.mu.Unlock()
	return points, nil
}

// Snapshot returns a copy of the cached quote table.
func (svc *Service) Snapshot() map[string]domain.PricePoint {
	svc.mu.RLock()
	defer svc.mu.RUnlock()
	out := make(map[string]domain.PricePoint, len(svc.quotes))
	for k, v := range svc.quotes {
		out[k] = v
	}
	return out
}

func (svc *Service) normalize(symbols []string) []string {
	seen := make(map[string]struct{}, len(symbols))
	valid := make([]string, 0, len(symbols))
	for _, s := range symbols {
		symbol := strings.ToUpper(strings.TrimSpace(s))
		if symbol == "" {
			continue
		}
		if _, dup := seen[symbol]; dup {
			continue
		}
		seen[symbol] = struct{}{}
		if _, known := svc.cat.Asset(symbol); known {
			valid = append(valid, symbol)
		}
	}
	return valid
}

func (svc *Service) resolveOne(ctx context.Context, symbol string) domain.PricePoint {
	feed, ok := svc.cat.Feed(symbol)
	if !ok {
		metrics.FeedResolutions.WithLabelValues(symbol, domain.SourceMissingFeed).Inc()
		return svc.fallbackPoint(symbol, domain.SourceMissingFeed)
	}

	start := time.Now()
	price, updatedAt, err := svc.reader.LatestRound(ctx, feed)
	metrics.FeedReadDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		svc.logger.Warn().Err(err).Str("symbol", symbol).Str("feed", feed.Address).Msg("feed read failed, serving fallback")
		metrics.FeedResolutions.WithLabelValues(symbol, domain.SourceFeedError).Inc()
		return svc.fallbackPoint(symbol, domain.SourceFeedError)
	}

	metrics.FeedResolutions.WithLabelValues(symbol, "live").Inc()
	return domain.PricePoint{
		Symbol:    symbol,
		Price:     price,
		UpdatedAt: updatedAt.UTC().Format(time.RFC3339),
		Source:    feed.Address,
	}
}

func (svc *Service) fallbackPoint(symbol, source string) domain.PricePoint {
	return domain.PricePoint{
		Symbol:     symbol,
		Price:      svc.cat.FallbackPrice(symbol),
		UpdatedAt:  time.Now().UTC().Format(time.RFC3339),
		Source:     source,
		IsFallback: true,
	}
}
