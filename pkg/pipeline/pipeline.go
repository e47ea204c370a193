// Package pipeline provides the core catalog pipeline for coursegraph.
//
// This package implements the complete load → build → query pipeline that
// can be used by CLI and API components. By centralizing this logic, we
// ensure consistent behavior across all entry points and avoid code
// duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Read raw prerequisite entries from a catalog file
//  2. Build: Parse every entry and assemble the validated course graph
//  3. Query: Compute the topological order and/or the eligible courses
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    CatalogPath: "catalog.toml",
//	    Completed:   []string{"CS101"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Order, result.Eligible)
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/coursegraph/coursegraph/pkg/catalog"
)

// Cache TTLs per stage. Catalog builds are pure functions of their
// entries, so they keep for a long time; query results are cheap to
// recompute and kept shorter.
const (
	TTLCatalog  = 7 * 24 * time.Hour
	TTLOrder    = 24 * time.Hour
	TTLEligible = time.Hour
)

// Options contains all configuration for the catalog pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// CatalogPath is a local catalog file (flat text or TOML).
	// Exactly one of CatalogPath and Entries must be set.
	CatalogPath string `json:"catalog_path,omitempty"`

	// Entries supplies raw prerequisite entries directly, bypassing file
	// loading. Used by the API where catalogs arrive in request bodies.
	Entries map[string]string `json:"entries,omitempty"`

	// Completed lists the courses the student has already passed.
	// When nil, the eligibility stage is skipped.
	Completed []string `json:"completed,omitempty"`

	// SkipOrder disables the topological-order stage.
	SkipOrder bool `json:"skip_order,omitempty"`

	// Refresh bypasses the cache for all stages.
	Refresh bool `json:"refresh,omitempty"`

	// Logger overrides the runner's logger for this run, so per-request
	// loggers (request IDs, verbosity) reach the stage logs. Nil means
	// the runner's own logger.
	Logger *log.Logger `json:"-"`
}

// Validate checks required fields.
func (o *Options) Validate() error {
	if o.CatalogPath == "" && o.Entries == nil {
		return fmt.Errorf("catalog_path or entries is required")
	}
	if o.CatalogPath != "" && o.Entries != nil {
		return fmt.Errorf("catalog_path and entries are mutually exclusive")
	}
	return nil
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the validated course graph.
	Graph *catalog.Graph

	// CatalogHash is the content hash of the raw entries, used for cache
	// keys and API responses.
	CatalogHash string

	// Order is the prerequisite-respecting course order.
	// Nil when the stage was skipped.
	Order []string

	// Eligible lists the courses the student may take next.
	// Nil when no completed set was given.
	Eligible []string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	CourseCount     int
	EdgeCount       int
	LoadTime        time.Duration
	BuildTime       time.Duration
	OrderTime       time.Duration
	EligibilityTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BuildHit    bool // Whether the built graph came from cache
	OrderHit    bool // Whether the topological order came from cache
	EligibleHit bool // Whether the eligibility result came from cache
}
