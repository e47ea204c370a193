package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursegraph/coursegraph/pkg/cache"
	"github.com/coursegraph/coursegraph/pkg/catalog"
	"github.com/coursegraph/coursegraph/pkg/course"
	"github.com/coursegraph/coursegraph/pkg/graphio"
	"github.com/coursegraph/coursegraph/pkg/observability"
	"github.com/coursegraph/coursegraph/pkg/source"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If c is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Execute runs the complete load → build → query pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := opts.Logger
	if logger == nil {
		logger = r.Logger
	}

	result := &Result{}

	// Stage 1: Load
	loadStart := time.Now()
	entries, err := r.Load(opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Stats.LoadTime = time.Since(loadStart)
	result.CatalogHash = cache.HashEntries(entries)

	// Stage 2: Build
	buildStart := time.Now()
	observability.Pipeline().OnBuildStart(ctx, len(entries))
	g, buildHit, err := r.BuildWithCacheInfo(ctx, entries, result.CatalogHash, opts.Refresh)
	result.Stats.BuildTime = time.Since(buildStart)
	if g != nil {
		result.Stats.CourseCount = g.Len()
		result.Stats.EdgeCount = g.EdgeCount()
	}
	observability.Pipeline().OnBuildComplete(ctx, result.Stats.CourseCount, result.Stats.EdgeCount, result.Stats.BuildTime, err)
	if err != nil {
		return nil, fmt.Errorf("build: %w", err)
	}
	result.Graph = g
	result.CacheInfo.BuildHit = buildHit

	logger.Info("built catalog",
		"courses", g.Len(),
		"edges", g.EdgeCount(),
		"duration", result.Stats.BuildTime)

	// Stage 3a: Topological order
	if !opts.SkipOrder {
		orderStart := time.Now()
		observability.Pipeline().OnOrderStart(ctx, g.Len())
		order, orderHit, err := r.OrderWithCacheInfo(ctx, g, result.CatalogHash, opts.Refresh)
		result.Stats.OrderTime = time.Since(orderStart)
		observability.Pipeline().OnOrderComplete(ctx, result.Stats.OrderTime, err)
		if err != nil {
			return nil, fmt.Errorf("order: %w", err)
		}
		result.Order = order
		result.CacheInfo.OrderHit = orderHit

		logger.Info("computed order",
			"courses", len(order),
			"duration", result.Stats.OrderTime)
	}

	// Stage 3b: Eligibility
	if opts.Completed != nil {
		eligStart := time.Now()
		observability.Pipeline().OnEligibilityStart(ctx, len(opts.Completed))
		eligible, eligHit, err := r.EligibleWithCacheInfo(ctx, g, result.CatalogHash, opts.Completed, opts.Refresh)
		result.Stats.EligibilityTime = time.Since(eligStart)
		observability.Pipeline().OnEligibilityComplete(ctx, len(eligible), result.Stats.EligibilityTime, err)
		if err != nil {
			return nil, fmt.Errorf("eligibility: %w", err)
		}
		result.Eligible = eligible
		result.CacheInfo.EligibleHit = eligHit

		logger.Info("computed eligibility",
			"completed", len(opts.Completed),
			"eligible", len(eligible),
			"duration", result.Stats.EligibilityTime)
	}

	return result, nil
}

// Load reads raw catalog entries from opts, either the inline entries or
// the catalog file.
func (r *Runner) Load(opts Options) (map[string]string, error) {
	if opts.Entries != nil {
		return opts.Entries, nil
	}
	return source.Load(opts.CatalogPath)
}

// BuildWithCacheInfo builds the course graph with caching and returns
// cache hit info. Build failures are never cached; only valid graphs are.
func (r *Runner) BuildWithCacheInfo(ctx context.Context, entries map[string]string, catalogHash string, refresh bool) (*catalog.Graph, bool, error) {
	cacheKey := r.Keyer.CatalogKey(catalogHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "catalog")
			if wire, err := graphio.UnmarshalCatalog(data); err == nil {
				if g, err := graphio.ToGraph(wire); err == nil {
					return g, true, nil
				}
			}
			// Corrupt cache entry, rebuild below
		} else {
			observability.Cache().OnCacheMiss(ctx, "catalog")
		}
	}

	g, err := catalog.Build(entries)
	if err != nil {
		return nil, false, err
	}

	if data, err := graphio.MarshalCatalog(g); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, TTLCatalog)
		observability.Cache().OnCacheSet(ctx, "catalog", len(data))
	}
	return g, false, nil
}

// Build is a convenience wrapper that discards the cache hit info.
func (r *Runner) Build(ctx context.Context, entries map[string]string) (*catalog.Graph, error) {
	g, _, err := r.BuildWithCacheInfo(ctx, entries, cache.HashEntries(entries), false)
	return g, err
}

// OrderWithCacheInfo computes the topological order with caching and
// returns cache hit info. Cycle errors are never cached.
func (r *Runner) OrderWithCacheInfo(ctx context.Context, g *catalog.Graph, catalogHash string, refresh bool) ([]string, bool, error) {
	cacheKey := r.Keyer.OrderKey(catalogHash)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "order")
			var order []string
			if err := json.Unmarshal(data, &order); err == nil {
				return order, true, nil
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "order")
		}
	}

	order, err := g.TopologicalOrder()
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(order); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, TTLOrder)
		observability.Cache().OnCacheSet(ctx, "order", len(data))
	}
	return order, false, nil
}

// EligibleWithCacheInfo computes the eligible courses with caching and
// returns cache hit info.
func (r *Runner) EligibleWithCacheInfo(ctx context.Context, g *catalog.Graph, catalogHash string, completed []string, refresh bool) ([]string, bool, error) {
	cacheKey := r.Keyer.EligibilityKey(catalogHash, completed)

	if !refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			observability.Cache().OnCacheHit(ctx, "eligible")
			var eligible []string
			if err := json.Unmarshal(data, &eligible); err == nil {
				return eligible, true, nil
			}
		} else {
			observability.Cache().OnCacheMiss(ctx, "eligible")
		}
	}

	eligible, err := g.Eligible(course.NewSet(completed...))
	if err != nil {
		return nil, false, err
	}

	if data, err := json.Marshal(eligible); err == nil {
		_ = r.Cache.Set(ctx, cacheKey, data, TTLEligible)
		observability.Cache().OnCacheSet(ctx, "eligible", len(data))
	}
	return eligible, false, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}
