// Package pipeline provides the layout → render pipeline for gridlayout.
//
// The CLI and the HTTP server both drive the engine through a [Runner], so
// defaults, caching, and persistence behave the same at every entry point.
//
// # Architecture
//
// The pipeline consists of two stages:
//
//  1. Layout: anneal the graph onto the grid (cached by graph hash and
//     every option that changes the result)
//  2. Render: produce artifacts (SVG, PNG, DOT, text, JSON) from the layout
//     (cached per format)
//
// Completed runs are optionally persisted to a [store.Store].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{Width: 3, Height: 3, Formats: []string{"svg"}}
//	result, err := runner.Execute(ctx, g, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	layout, err := runner.ComputeLayout(ctx, g, opts)
//	artifacts, err := runner.Render(ctx, layout, opts)
package pipeline

import (
	"fmt"
	"io"
	"math"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/gridlayout/pkg/anneal"
	"github.com/matzehuels/gridlayout/pkg/cache"
	"github.com/matzehuels/gridlayout/pkg/cost"
	errs "github.com/matzehuels/gridlayout/pkg/errors"
	"github.com/matzehuels/gridlayout/pkg/graph"
	"github.com/matzehuels/gridlayout/pkg/grid"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

// DefaultScale is the PNG scale factor.
const DefaultScale = 1.0

// Format constants for output formats.
const (
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatDOT  = "dot"
	FormatText = "txt"
	FormatJSON = "json"
)

// ValidFormats lists the supported output formats in display order.
var ValidFormats = []string{FormatSVG, FormatPNG, FormatDOT, FormatText, FormatJSON}

// DefaultGridSide returns the side of the smallest square grid with at
// least twice as many cells as nodes.
func DefaultGridSide(nodes int) int {
	return max(1, int(math.Ceil(math.Sqrt(float64(2*nodes)))))
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Layout options
	Width   int           `json:"width,omitempty"`
	Height  int           `json:"height,omitempty"`
	Anneal  anneal.Params `json:"anneal"`
	Initial grid.Layout   `json:"initial,omitempty"` // optional starting layout
	Refresh bool          `json:"refresh,omitempty"` // bypass the layout cache

	// Render options
	Formats  []string `json:"formats,omitempty"`
	IDs      bool     `json:"ids,omitempty"` // label nodes by id instead of label
	Detailed bool     `json:"detailed,omitempty"`
	ShowGrid bool     `json:"show_grid,omitempty"`
	Scale    float64  `json:"scale,omitempty"`

	// Runtime options (not serialized)
	Logger   *log.Logger       `json:"-"`
	Progress func(anneal.Step) `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Graph is the input graph.
	Graph graph.Graph

	// GraphHash is the content hash of the graph.
	GraphHash string

	// Layout is the computed placement.
	Layout graph.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// RunID identifies the persisted run; empty without a store.
	RunID string

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	NodeCount  int
	EdgeCount  int
	LayoutTime time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	LayoutHit bool // Whether the layout came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !slices.Contains(ValidFormats, format) {
		return errs.New(errs.ErrCodeInvalidConfig, "invalid format: %q (must be one of: %v)", format, ValidFormats)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// Grid returns the configured grid.
func (o *Options) Grid() grid.Grid {
	return grid.Grid{Width: o.Width, Height: o.Height}
}

// SetLayoutDefaults fills unset layout options for a graph with the given
// node count. A zero Anneal takes the package defaults as a whole. Otherwise
// only fields for which zero is never valid are filled; Perturbation and Seed
// keep an explicit zero. Negative values are left for validation to reject.
func (o *Options) SetLayoutDefaults(nodes int) {
	switch {
	case o.Width == 0 && o.Height == 0:
		o.Width = DefaultGridSide(nodes)
		o.Height = o.Width
	case o.Width == 0:
		o.Width = o.Height
	case o.Height == 0:
		o.Height = o.Width
	}

	d := anneal.DefaultParams()
	if o.Anneal == (anneal.Params{}) {
		o.Anneal = d
	}
	a := &o.Anneal
	if a.TMax == 0 {
		a.TMax = d.TMax
	}
	if a.TMin == 0 {
		a.TMin = d.TMin
	}
	if a.Iterations == 0 {
		a.Iterations = d.Iterations
	}
	if a.Cooling == 0 {
		a.Cooling = d.Cooling
	}
	if a.DMax == 0 {
		a.DMax = cost.DefaultDMax
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout sets defaults and validates layout options.
func (o *Options) ValidateForLayout(nodes int) error {
	o.SetLayoutDefaults(nodes)
	if err := o.Grid().Validate(); err != nil {
		return err
	}
	if err := o.Grid().CheckCapacity(nodes); err != nil {
		return err
	}
	if o.Initial != nil && len(o.Initial) != nodes {
		return errs.New(errs.ErrCodeInvalidLayout, "initial layout has %d positions for %d nodes", len(o.Initial), nodes)
	}
	return o.Anneal.Validate()
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatSVG}
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender sets defaults and validates render options.
func (o *Options) ValidateForRender() error {
	o.SetRenderDefaults()
	if o.Scale < 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "scale must be positive, got %g", o.Scale)
	}
	return ValidateFormats(o.Formats)
}

// LayoutKeyOpts returns cache key options for layout computation.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	k := cache.LayoutKeyOpts{
		Width:        o.Width,
		Height:       o.Height,
		TMax:         o.Anneal.TMax,
		TMin:         o.Anneal.TMin,
		Iterations:   o.Anneal.Iterations,
		Cooling:      o.Anneal.Cooling,
		Perturbation: o.Anneal.Perturbation,
		DMax:         o.Anneal.DMax,
		Seed:         o.Anneal.Seed,
	}
	if o.Initial != nil {
		k.InitialHash, _ = cache.HashJSON(o.Initial)
	}
	return k
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		IDs:      o.IDs,
		Detailed: o.Detailed,
		ShowGrid: o.ShowGrid,
		Scale:    o.Scale,
	}
}

func (o *Options) String() string {
	return fmt.Sprintf("%dx%d tmax=%g tmin=%g ne=%d rc=%g p=%g dmax=%d seed=%d",
		o.Width, o.Height, o.Anneal.TMax, o.Anneal.TMin, o.Anneal.Iterations,
		o.Anneal.Cooling, o.Anneal.Perturbation, o.Anneal.DMax, o.Anneal.Seed)
}
