package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardwalk-eda/boardwalk/pkg/pipeline"
)

// placeOpts holds the command-line flags for the place command.
type placeOpts struct {
	output     string   // output file path (or base path for multiple formats)
	formats    []string // output formats: json, report, dot, svg, pdf, png
	configPath string   // TOML tuning file overlaid on the default config
	iterations int      // solver iteration cap
	dt         float64  // integration timestep
	snap       bool     // snap rotations to 90° multiples after the run
	detailed   bool     // net names and poses in ratsnest output
	refresh    bool     // recompute even when cached results exist
	noCache    bool     // disable the cache entirely
}

// placeCommand creates the place command for running the placement pipeline.
//
// Default settings:
//   - format: json (the placed board)
//   - iterations: 1000, dt: 0.01
//   - caching: enabled, keyed on board content and solver options
func (c *CLI) placeCommand() *cobra.Command {
	var formatsStr string
	opts := placeOpts{}

	cmd := &cobra.Command{
		Use:   "place [board.json]",
		Short: "Optimize component placement on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parsePlaceFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runPlace(cmd, args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): json (default), report, dot, svg, pdf, png (comma-separated)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file overriding the default solver configuration")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", pipeline.DefaultIterations, "maximum solver iterations")
	cmd.Flags().Float64Var(&opts.dt, "dt", pipeline.DefaultDt, "integration timestep")
	cmd.Flags().BoolVar(&opts.snap, "snap", false, "snap rotations to 90° multiples after the run")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include poses and net names in ratsnest output")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even when cached results exist")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the cache entirely")

	return cmd
}

// parsePlaceFormats parses the --format flag into a slice of output formats.
// If empty, defaults to ["json"].
func parsePlaceFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatJSON}
	}
	return strings.Split(s, ",")
}

// runPlace executes the load-place-render pipeline and writes the artifacts.
func (c *CLI) runPlace(cmd *cobra.Command, input string, opts *placeOpts) error {
	runner, err := c.newRunner(opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	prog := newProgress(c.Logger)
	result, err := runner.Execute(cmd.Context(), pipeline.Options{
		BoardPath:  input,
		ConfigPath: opts.configPath,
		Iterations: opts.iterations,
		Dt:         opts.dt,
		Snap:       opts.snap,
		Refresh:    opts.refresh,
		Formats:    opts.formats,
		Detailed:   opts.detailed,
		Logger:     c.Logger,
	})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Placed %d components", result.Stats.ComponentCount))

	paths, err := writeArtifacts(result.Artifacts, opts.output, input)
	if err != nil {
		return err
	}

	if result.Converged {
		printSuccess("Converged after %d iterations (wire length %.2f)", result.Iterations, result.WireLength)
	} else {
		printWarning("Stopped at the iteration cap (wire length %.2f)", result.WireLength)
	}
	printStats(result.Stats.ComponentCount, result.Stats.SpringCount, result.CacheInfo.PlaceHit)
	for _, p := range paths {
		printFile(p)
	}
	return nil
}

// writeArtifacts writes each rendered artifact to disk and returns the paths
// in sorted format order. For a single format, output is used verbatim when
// set; otherwise paths derive from the input file name as base.format.
func writeArtifacts(artifacts map[string][]byte, output, input string) ([]string, error) {
	formats := make([]string, 0, len(artifacts))
	for format := range artifacts {
		formats = append(formats, format)
	}
	sort.Strings(formats)

	base := basePath(output, input)
	var paths []string
	for _, format := range formats {
		path := base + "." + format
		if output != "" && len(artifacts) == 1 {
			path = output
		}
		if err := os.WriteFile(path, artifacts[format], 0o644); err != nil {
			return nil, fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input. If output has a
// known format extension, that extension is stripped.
func basePath(output, input string) string {
	if output == "" {
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
