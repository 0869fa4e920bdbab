// Package pipeline provides the core layout pipeline for scopetree.
//
// This package implements the complete build → layout → route pipeline that
// can be used by CLI, API, and embedding visualizers. By centralizing this
// logic, we ensure consistent behavior across all entry points and avoid
// code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Build: mirror the object graph into a positioned graph, measuring
//     each node's footprint under the current expansion state
//  2. Layout: compute subtree sizes and node coordinates (two passes)
//  3. Route: compute edge path geometry over the fixed positions
//
// Layout is a pure function of the snapshot and the options, so results are
// cached under the graph's content hash plus the options.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Direction: "lr"}
//	result, err := runner.Execute(ctx, objGraph, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	positioned := result.Layout
package pipeline

import (
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scopeviz/scopetree/pkg/graphio"
	"github.com/scopeviz/scopetree/pkg/layout"
)

// Defaults shared by CLI and API.
const (
	// DefaultDirection is the layout direction applied when none is given.
	DefaultDirection = graphio.DirectionLeftToRight

	// DefaultCacheTTL is how long cached layouts stay valid. Layouts are
	// pure functions of their input, so the TTL only bounds disk usage.
	DefaultCacheTTL = 24 * time.Hour
)

// ValidDirections is the set of supported layout directions.
var ValidDirections = map[string]bool{
	graphio.DirectionLeftToRight: true,
	graphio.DirectionTopToBottom: true,
}

// Options contains all configuration for the layout pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options. Zero margins mean "unset" and are replaced by the
	// engine defaults (30), so a zero-margin layout is not expressible
	// through Options; construct a layout.Engine with WithMargins(0, 0)
	// directly for that.
	Direction string  `json:"direction,omitempty"`
	MarginX   float64 `json:"margin_x,omitempty"`
	MarginY   float64 `json:"margin_y,omitempty"`
	MaxDepth  int     `json:"max_depth,omitempty"` // 0 = unlimited
	MaxNodes  int     `json:"max_nodes,omitempty"` // 0 = unlimited

	// Expansion maps node IDs to the property names shown expanded.
	Expansion map[string][]string `json:"expansion,omitempty"`

	// Refresh bypasses the cache and recomputes the layout.
	Refresh bool `json:"refresh,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger     `json:"-"`
	Measurer layout.Measurer `json:"-"`
	Router   layout.Router   `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// ValidateAndSetDefaults checks fields and applies defaults.
// This method is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if o.Direction == "" {
		o.Direction = DefaultDirection
	}
	if !ValidDirections[o.Direction] {
		return fmt.Errorf("%w: %q (must be one of: lr, tb)", layout.ErrInvalidDirection, o.Direction)
	}
	if o.MarginX == 0 {
		o.MarginX = layout.DefaultMarginX
	}
	if o.MarginY == 0 {
		o.MarginY = layout.DefaultMarginY
	}
	if o.MaxDepth < 0 || o.MaxNodes < 0 {
		return fmt.Errorf("limits must not be negative")
	}
	o.validated = true
	return nil
}

// expansionState converts the serializable expansion map to the layout form.
func (o *Options) expansionState() layout.ExpansionState {
	state := make(layout.ExpansionState, len(o.Expansion))
	for nodeID, props := range o.Expansion {
		for _, p := range props {
			state.Expand(nodeID, p)
		}
	}
	return state
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the computed, routed layout in wire form.
	Layout graphio.Layout

	// GraphHash is the content hash of the input graph.
	GraphHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks whether the layout came from cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	BuildTime  time.Duration
	LayoutTime time.Duration
	RouteTime  time.Duration
}

// CacheInfo tracks cache hits for the pipeline.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
}
