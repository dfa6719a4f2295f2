// Package pipeline provides the core placement pipeline for Boardwalk.
//
// This package implements the complete load → place → render pipeline that
// can be used by CLI, API, and worker components. By centralizing this logic,
// we ensure consistent behavior across all entry points and avoid code duplication.
//
// # Architecture
//
// The pipeline consists of three stages:
//
//  1. Load: Parse and validate a board file
//  2. Place: Run the force-directed optimizer until convergence
//  3. Render: Generate output in various formats (JSON, report, DOT, SVG, ...)
//
// Each stage can be run independently or as part of the complete pipeline.
//
// # Usage
//
// Create a Runner and execute the pipeline:
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	opts := pipeline.Options{
//	    BoardPath: "boards/sensor-hub.json",
//	    Formats:   []string{"json", "svg"},
//	}
//	result, err := runner.Execute(ctx, opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	svg := result.Artifacts["svg"]
//
// Run individual stages:
//
//	// Load only
//	b, err := runner.Load(ctx, opts)
//
//	// Place with an existing board
//	placed, err := runner.Place(ctx, b, opts)
package pipeline

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/cache"
	"github.com/boardwalk-eda/boardwalk/pkg/place"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI, API, and Worker
// =============================================================================

const (
	// DefaultIterations is the iteration cap for a placement run. The
	// solver usually converges well before this on small boards; API users
	// can override it by setting Iterations explicitly.
	DefaultIterations = 1000

	// DefaultDt is the integration time step. Larger steps converge faster
	// but risk oscillation with stiff springs.
	DefaultDt = 0.01
)

// Format constants for output formats.
const (
	FormatJSON   = "json"
	FormatReport = "report"
	FormatDOT    = "dot"
	FormatSVG    = "svg"
	FormatPNG    = "png"
	FormatPDF    = "pdf"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatJSON:   true,
	FormatReport: true,
	FormatDOT:    true,
	FormatSVG:    true,
	FormatPNG:    true,
	FormatPDF:    true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the placement pipeline.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Load options. Exactly one of BoardPath or BoardJSON must be set:
	// the CLI passes a file path, the API passes the request body.
	BoardPath string `json:"board_path,omitempty"`
	BoardJSON []byte `json:"board_json,omitempty"`

	// Place options
	ConfigPath string  `json:"config_path,omitempty"` // TOML tuning file overlaid on defaults
	Iterations int     `json:"iterations,omitempty"`
	Dt         float64 `json:"dt,omitempty"`
	Snap       bool    `json:"snap,omitempty"` // Snap rotations to 90° multiples after the run
	Refresh    bool    `json:"refresh,omitempty"`

	// Render options
	Formats  []string `json:"formats,omitempty"`
	Detailed bool     `json:"detailed,omitempty"` // Poses and net names in ratsnest output

	// Runtime options (not serialized)
	Logger   *log.Logger        `json:"-"`
	Config   *place.Config      `json:"-"` // Overrides ConfigPath when set
	Callback place.StepCallback `json:"-"` // Per-iteration progress callback

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// RunID uniquely identifies this pipeline execution.
	RunID string

	// Board is the placed board.
	Board *board.Board

	// BoardHash is the content hash of the input board file.
	BoardHash string

	// Iterations is the number of solver iterations actually executed.
	Iterations int

	// Converged reports whether the solver stopped below its thresholds
	// before hitting the iteration cap.
	Converged bool

	// WireLength is the total ratsnest length after placement.
	WireLength float64

	// Energy is the final system energy.
	Energy float64

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	ComponentCount int
	SpringCount    int
	LoadTime       time.Duration
	PlaceTime      time.Duration
	RenderTime     time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	BoardHit  bool // Whether the parsed board came from cache
	PlaceHit  bool // Whether the placement solution came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: json, report, dot, svg, png, pdf)", format)
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

// ValidateAndSetDefaults checks required fields and applies defaults for the full pipeline.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForLoad(); err != nil {
		return err
	}
	if err := o.ValidateForPlace(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForLoad checks required fields for board loading.
func (o *Options) ValidateForLoad() error {
	if o.BoardPath == "" && len(o.BoardJSON) == 0 {
		return fmt.Errorf("board_path or board_json is required")
	}
	if o.BoardPath != "" && len(o.BoardJSON) > 0 {
		return fmt.Errorf("board_path and board_json are mutually exclusive")
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForPlace validates and sets defaults for the solver stage.
func (o *Options) ValidateForPlace() error {
	if o.Iterations < 0 {
		return fmt.Errorf("iterations cannot be negative")
	}
	if o.Dt < 0 {
		return fmt.Errorf("dt cannot be negative")
	}
	if o.Iterations == 0 {
		o.Iterations = DefaultIterations
	}
	if o.Dt == 0 {
		o.Dt = DefaultDt
	}
	o.setLoggerDefault()
	return nil
}

// ValidateForRender validates and sets defaults for rendering.
func (o *Options) ValidateForRender() error {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatJSON}
	}
	o.setLoggerDefault()
	return ValidateFormats(o.Formats)
}

func (o *Options) setLoggerDefault() {
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// PlacementConfig resolves the solver configuration: an explicit Config wins,
// then a TOML tuning file, then the defaults.
func (o *Options) PlacementConfig() (place.Config, error) {
	if o.Config != nil {
		if err := o.Config.Validate(); err != nil {
			return place.Config{}, err
		}
		return *o.Config, nil
	}
	if o.ConfigPath != "" {
		return place.LoadConfig(o.ConfigPath)
	}
	return place.DefaultConfig(), nil
}

// PlacementKeyOpts returns cache key options for the solver stage.
// The config hash folds every tuning parameter into the key.
func (o *Options) PlacementKeyOpts(cfg place.Config) cache.PlacementKeyOpts {
	cfgData, _ := json.Marshal(cfg)
	return cache.PlacementKeyOpts{
		ConfigHash: cache.Hash(cfgData),
		Iterations: o.Iterations,
		Dt:         o.Dt,
		Snap:       o.Snap,
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		Detailed: o.Detailed,
	}
}
