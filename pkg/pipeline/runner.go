package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scopeviz/scopetree/pkg/cache"
	"github.com/scopeviz/scopetree/pkg/graphio"
	"github.com/scopeviz/scopetree/pkg/layout"
	"github.com/scopeviz/scopetree/pkg/object"
	"github.com/scopeviz/scopetree/pkg/observability"
	"github.com/scopeviz/scopetree/pkg/route"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API can use this to avoid duplicating caching logic.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options, but a single object graph must not be
// laid out concurrently with mutation.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger

	// CacheTTL bounds how long stored layouts stay valid. Zero selects
	// DefaultCacheTTL.
	CacheTTL time.Duration
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
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

// Close releases the runner's cache resources.
func (r *Runner) Close() error {
	return r.Cache.Close()
}

// Execute runs the complete build → layout → route pipeline with caching.
func (r *Runner) Execute(ctx context.Context, g *object.Graph, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	logger := r.Logger
	if opts.Logger != nil {
		logger = opts.Logger
	}

	if err := g.Validate(); err != nil {
		return nil, fmt.Errorf("invalid graph: %w", err)
	}

	result := &Result{}
	result.Stats.NodeCount = g.NodeCount()
	result.Stats.EdgeCount = g.ReferenceCount()

	// Hash the serialized graph for cache keys and API responses.
	graphData, err := graphio.MarshalGraph(g)
	if err != nil {
		return nil, fmt.Errorf("hash graph: %w", err)
	}
	result.GraphHash = cache.Hash(graphData)

	key := r.Keyer.LayoutKey(result.GraphHash, cache.LayoutKeyOpts{
		Direction: opts.Direction,
		MarginX:   opts.MarginX,
		MarginY:   opts.MarginY,
		MaxDepth:  opts.MaxDepth,
		MaxNodes:  opts.MaxNodes,
		Expansion: opts.Expansion,
	})

	if !opts.Refresh {
		if cached, hit := r.lookupLayout(ctx, key); hit {
			result.Layout = *cached
			result.CacheInfo.LayoutHit = true
			logger.Debug("layout cache hit", "hash", result.GraphHash[:12])
			return result, nil
		}
	}

	l, err := r.computeLayout(ctx, g, opts, result)
	if err != nil {
		return nil, err
	}
	result.Layout = l

	logger.Info("computed layout",
		"direction", opts.Direction,
		"nodes", result.Stats.NodeCount,
		"edges", result.Stats.EdgeCount,
		"duration", result.Stats.BuildTime+result.Stats.LayoutTime+result.Stats.RouteTime)

	r.storeLayout(ctx, key, l)
	return result, nil
}

// computeLayout runs the three uncached stages.
func (r *Runner) computeLayout(ctx context.Context, g *object.Graph, opts Options, result *Result) (graphio.Layout, error) {
	dir, err := layout.ParseDirection(opts.Direction)
	if err != nil {
		return graphio.Layout{}, err
	}

	// Stage 1: Build
	buildStart := time.Now()
	observability.Layout().OnBuildStart(ctx, g.NodeCount())
	pg, err := layout.Build(g, opts.expansionState(), opts.Measurer)
	result.Stats.BuildTime = time.Since(buildStart)
	observability.Layout().OnBuildComplete(ctx, g.NodeCount(), result.Stats.EdgeCount, result.Stats.BuildTime, err)
	if err != nil {
		return graphio.Layout{}, fmt.Errorf("build: %w", err)
	}

	// Stage 2: Layout
	layoutStart := time.Now()
	observability.Layout().OnLayoutStart(ctx, opts.Direction, len(pg.Nodes))
	engine := layout.NewEngine(dir,
		layout.WithMargins(opts.MarginX, opts.MarginY),
		layout.WithMaxDepth(opts.MaxDepth),
		layout.WithMaxNodes(opts.MaxNodes),
	)
	err = engine.Layout(pg)
	result.Stats.LayoutTime = time.Since(layoutStart)
	observability.Layout().OnLayoutComplete(ctx, opts.Direction, result.Stats.LayoutTime, err)
	if err != nil {
		return graphio.Layout{}, fmt.Errorf("layout: %w", err)
	}

	// Stage 3: Route
	router := opts.Router
	if router == nil {
		router = route.NewOrthogonal(dir)
	}
	routeStart := time.Now()
	edges := pg.Edges()
	observability.Layout().OnRouteStart(ctx, len(edges))
	err = router.Route(pg)
	result.Stats.RouteTime = time.Since(routeStart)
	observability.Layout().OnRouteComplete(ctx, len(edges), result.Stats.RouteTime, err)
	if err != nil {
		return graphio.Layout{}, fmt.Errorf("route: %w", err)
	}

	return graphio.FromLayout(pg, dir), nil
}

// lookupLayout checks the cache for a previously computed layout.
func (r *Runner) lookupLayout(ctx context.Context, key string) (*graphio.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil || !hit {
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	var l graphio.Layout
	if err := json.Unmarshal(data, &l); err != nil {
		// Corrupt entry - recompute and overwrite.
		observability.Cache().OnCacheMiss(ctx, "layout")
		return nil, false
	}
	observability.Cache().OnCacheHit(ctx, "layout")
	return &l, true
}

// storeLayout writes a computed layout to the cache. Failures are logged,
// not surfaced - caching is best effort.
func (r *Runner) storeLayout(ctx context.Context, key string, l graphio.Layout) {
	data, err := json.Marshal(l)
	if err != nil {
		return
	}
	ttl := r.CacheTTL
	if ttl == 0 {
		ttl = DefaultCacheTTL
	}
	if err := r.Cache.Set(ctx, key, data, ttl); err != nil {
		r.Logger.Debug("layout cache write failed", "err", err)
		return
	}
	observability.Cache().OnCacheSet(ctx, "layout", len(data))
}
