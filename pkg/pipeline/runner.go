package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/cache"
	"github.com/boardwalk-eda/boardwalk/pkg/observability"
	"github.com/boardwalk-eda/boardwalk/pkg/place"
	"github.com/boardwalk-eda/boardwalk/pkg/render/ratsnest"
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

// PlacementSolution is the cached output of the solver stage.
type PlacementSolution struct {
	Board      json.RawMessage `json:"board"`
	Iterations int             `json:"iterations"`
	Converged  bool            `json:"converged"`
	WireLength float64         `json:"wire_length"`
	Energy     float64         `json:"energy"`
}

// Execute runs the complete load → place → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result := &Result{
		RunID:     uuid.NewString(),
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Load
	loadStart := time.Now()
	b, boardHash, boardHit, err := r.LoadWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}
	result.Board = b
	result.BoardHash = boardHash
	result.Stats.LoadTime = time.Since(loadStart)
	result.Stats.ComponentCount = len(b.Components)
	result.CacheInfo.BoardHit = boardHit

	r.Logger.Info("loaded board",
		"name", b.Name,
		"components", len(b.Components),
		"keepouts", len(b.Keepouts),
		"duration", result.Stats.LoadTime)

	// Stage 2: Place
	placeStart := time.Now()
	opt, sol, placeHit, err := r.PlaceWithCacheInfo(ctx, b, boardHash, opts)
	if err != nil {
		return nil, fmt.Errorf("place: %w", err)
	}
	result.Iterations = sol.Iterations
	result.Converged = sol.Converged
	result.WireLength = sol.WireLength
	result.Energy = sol.Energy
	result.Stats.PlaceTime = time.Since(placeStart)
	result.Stats.SpringCount = len(opt.Springs())
	result.CacheInfo.PlaceHit = placeHit

	r.Logger.Info("placed components",
		"iterations", sol.Iterations,
		"converged", sol.Converged,
		"wire_length", fmt.Sprintf("%.2f", sol.WireLength),
		"duration", result.Stats.PlaceTime)

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, opt, sol, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)

	return result, nil
}

// LoadWithCacheInfo reads and parses the board with caching and returns
// cache hit info plus the content hash used in downstream cache keys.
func (r *Runner) LoadWithCacheInfo(ctx context.Context, opts Options) (*board.Board, string, bool, error) {
	if err := opts.ValidateForLoad(); err != nil {
		return nil, "", false, err
	}
	r.applyLogger(&opts)

	path := opts.BoardPath
	observability.Pipeline().OnLoadStart(ctx, path)
	start := time.Now()

	raw := opts.BoardJSON
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			observability.Pipeline().OnLoadComplete(ctx, path, 0, time.Since(start), err)
			return nil, "", false, fmt.Errorf("read %s: %w", path, err)
		}
		raw = data
	}
	boardHash := cache.Hash(raw)

	// The cached value is the normalized board JSON: recomputed pin
	// positions, validation already passed.
	cacheKey := r.Keyer.BoardKey(boardHash)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if b, err := board.ReadJSON(bytes.NewReader(data)); err == nil {
				observability.Cache().OnCacheHit(ctx, "board")
				observability.Pipeline().OnLoadComplete(ctx, path, len(b.Components), time.Since(start), nil)
				return b, boardHash, true, nil
			}
		}
		observability.Cache().OnCacheMiss(ctx, "board")
	}

	b, err := board.ReadJSON(bytes.NewReader(raw))
	if err != nil {
		observability.Pipeline().OnLoadComplete(ctx, path, 0, time.Since(start), err)
		return nil, "", false, err
	}

	if !opts.Refresh {
		var buf bytes.Buffer
		if err := board.WriteJSON(b, &buf); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, buf.Bytes(), cache.TTLBoard)
			observability.Cache().OnCacheSet(ctx, "board", buf.Len())
		}
	}

	observability.Pipeline().OnLoadComplete(ctx, path, len(b.Components), time.Since(start), nil)
	return b, boardHash, false, nil
}

// Load is a convenience wrapper that calls LoadWithCacheInfo and discards the cache info.
func (r *Runner) Load(ctx context.Context, opts Options) (*board.Board, error) {
	b, _, _, err := r.LoadWithCacheInfo(ctx, opts)
	return b, err
}

// PlaceWithCacheInfo runs the solver with caching and returns the optimizer
// (for rendering), the solution summary, and cache hit info.
//
// On a cache hit the board's component poses are replaced with the cached
// solution and the optimizer is rebuilt around them; the solver never runs.
func (r *Runner) PlaceWithCacheInfo(ctx context.Context, b *board.Board, boardHash string, opts Options) (*place.Optimizer, PlacementSolution, bool, error) {
	if err := opts.ValidateForPlace(); err != nil {
		return nil, PlacementSolution{}, false, err
	}
	r.applyLogger(&opts)

	cfg, err := opts.PlacementConfig()
	if err != nil {
		return nil, PlacementSolution{}, false, err
	}

	cacheKey := r.Keyer.PlacementKey(boardHash, opts.PlacementKeyOpts(cfg))

	// Try cache first (unless refresh requested)
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			var sol PlacementSolution
			if err := json.Unmarshal(data, &sol); err == nil {
				if placed, err := board.ReadJSON(bytes.NewReader(sol.Board)); err == nil {
					*b = *placed
					if opt, err := r.buildOptimizer(b, cfg); err == nil {
						observability.Cache().OnCacheHit(ctx, "placement")
						return opt, sol, true, nil
					}
				}
			}
		}
		observability.Cache().OnCacheMiss(ctx, "placement")
	}

	observability.Pipeline().OnPlaceStart(ctx, b.Name, len(b.Components))
	start := time.Now()

	opt, err := r.buildOptimizer(b, cfg)
	if err != nil {
		observability.Pipeline().OnPlaceComplete(ctx, b.Name, 0, time.Since(start), err)
		return nil, PlacementSolution{}, false, err
	}

	executed := opt.Run(opts.Iterations, opts.Dt, opts.Callback)
	if opts.Snap {
		opt.SnapRotationsTo90()
	}

	sol := PlacementSolution{
		Iterations: executed,
		Converged:  executed < opts.Iterations,
		WireLength: opt.TotalWireLength(),
		Energy:     opt.Energy(),
	}

	var buf bytes.Buffer
	if err := board.WriteJSON(b, &buf); err != nil {
		observability.Pipeline().OnPlaceComplete(ctx, b.Name, executed, time.Since(start), err)
		return nil, PlacementSolution{}, false, fmt.Errorf("serialize solution: %w", err)
	}
	sol.Board = buf.Bytes()

	if !opts.Refresh {
		if data, err := json.Marshal(sol); err == nil {
			_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLPlacement)
			observability.Cache().OnCacheSet(ctx, "placement", len(data))
		}
	}

	observability.Pipeline().OnPlaceComplete(ctx, b.Name, executed, time.Since(start), nil)
	return opt, sol, false, nil
}

// Place is a convenience wrapper that runs the solver in place and returns
// the placed board.
func (r *Runner) Place(ctx context.Context, b *board.Board, opts Options) (*board.Board, error) {
	_, _, _, err := r.PlaceWithCacheInfo(ctx, b, r.boardHashOf(b), opts)
	return b, err
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, opt *place.Optimizer, sol PlacementSolution, opts Options) (map[string][]byte, bool, error) {
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}
	r.applyLogger(&opts)

	placementHash := cache.Hash(sol.Board)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)

	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}

	if allCached && len(artifacts) == len(opts.Formats) {
		observability.Cache().OnCacheHit(ctx, "artifact")
		return artifacts, true, nil
	}

	observability.Pipeline().OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	rendered, err := r.renderFormats(opt, sol, opts)
	observability.Pipeline().OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
	if err != nil {
		return nil, false, err
	}

	// Cache each format
	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(placementHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
		observability.Cache().OnCacheSet(ctx, "artifact", len(data))
	}

	return rendered, false, nil
}

// renderFormats produces every requested artifact from the placed state.
func (r *Runner) renderFormats(opt *place.Optimizer, sol PlacementSolution, opts Options) (map[string][]byte, error) {
	artifacts := make(map[string][]byte, len(opts.Formats))

	var dot string
	needsDOT := func() string {
		if dot == "" {
			dot = ratsnest.ToDOT(opt, ratsnest.Options{Detailed: opts.Detailed})
		}
		return dot
	}

	for _, format := range opts.Formats {
		switch format {
		case FormatJSON:
			artifacts[format] = sol.Board
		case FormatReport:
			artifacts[format] = []byte(opt.Report())
		case FormatDOT:
			artifacts[format] = []byte(needsDOT())
		case FormatSVG:
			svg, err := ratsnest.RenderSVG(needsDOT())
			if err != nil {
				return nil, fmt.Errorf("render svg: %w", err)
			}
			artifacts[format] = svg
		case FormatPDF:
			pdf, err := ratsnest.RenderPDF(needsDOT())
			if err != nil {
				return nil, fmt.Errorf("render pdf: %w", err)
			}
			artifacts[format] = pdf
		case FormatPNG:
			png, err := ratsnest.RenderPNG(needsDOT(), 2.0)
			if err != nil {
				return nil, fmt.Errorf("render png: %w", err)
			}
			artifacts[format] = png
		}
	}

	return artifacts, nil
}

// buildOptimizer constructs the solver around a board and derives springs
// from net membership.
func (r *Runner) buildOptimizer(b *board.Board, cfg place.Config) (*place.Optimizer, error) {
	opt, err := place.FromBoard(b, cfg)
	if err != nil {
		return nil, err
	}
	opt.CreateSpringsFromNets()
	return opt, nil
}

// boardHashOf hashes a board's serialized form, for callers that hold a
// board value rather than the original file bytes.
func (r *Runner) boardHashOf(b *board.Board) string {
	var buf bytes.Buffer
	if err := board.WriteJSON(b, &buf); err != nil {
		return ""
	}
	return cache.Hash(buf.Bytes())
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
