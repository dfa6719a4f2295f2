package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/boardwalk-eda/boardwalk/pkg/board"
	"github.com/boardwalk-eda/boardwalk/pkg/pipeline"
	"github.com/boardwalk-eda/boardwalk/pkg/place"
	"github.com/boardwalk-eda/boardwalk/pkg/render/ratsnest"
)

// ratsnestOpts holds the command-line flags for the ratsnest command.
type ratsnestOpts struct {
	output     string // output file path
	format     string // output format: dot, svg, pdf, png
	configPath string // TOML tuning file, only net classification matters here
	detailed   bool   // net names and poses in the diagram
}

// ratsnestCommand creates the ratsnest command. It renders the board exactly
// as stored, without running the solver, which makes it useful for inspecting
// a board before and after placement.
func (c *CLI) ratsnestCommand() *cobra.Command {
	opts := ratsnestOpts{}

	cmd := &cobra.Command{
		Use:   "ratsnest [board.json]",
		Short: "Render a ratsnest diagram of a board as-is",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := validateRatsnestFormat(opts.format); err != nil {
				return err
			}
			return c.runRatsnest(args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default: input name with the format extension)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", pipeline.FormatSVG, "output format: svg (default), dot, pdf, png")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file overriding the default solver configuration")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "include poses and net names")

	return cmd
}

// validateRatsnestFormat checks that the format has a ratsnest rendering.
func validateRatsnestFormat(format string) error {
	switch format {
	case pipeline.FormatDOT, pipeline.FormatSVG, pipeline.FormatPDF, pipeline.FormatPNG:
		return nil
	}
	return fmt.Errorf("invalid format: %s (must be 'svg', 'dot', 'pdf', or 'png')", format)
}

// runRatsnest loads the board, builds springs from its nets, and renders the
// diagram at the stored component positions.
func (c *CLI) runRatsnest(input string, opts *ratsnestOpts) error {
	b, err := board.ImportJSON(input)
	if err != nil {
		return err
	}

	cfg := place.DefaultConfig()
	if opts.configPath != "" {
		cfg, err = place.LoadConfig(opts.configPath)
		if err != nil {
			return err
		}
	}

	opt, err := place.FromBoard(b, cfg)
	if err != nil {
		return err
	}
	springs := opt.CreateSpringsFromNets()
	c.Logger.Info("Loaded board", "components", len(opt.Components()), "springs", len(springs))

	dot := ratsnest.ToDOT(opt, ratsnest.Options{Detailed: opts.detailed})

	var data []byte
	if opts.format == pipeline.FormatDOT {
		data = []byte(dot)
	} else {
		spin := newSpinner("Rendering ratsnest...")
		spin.Start()
		switch opts.format {
		case pipeline.FormatSVG:
			data, err = ratsnest.RenderSVG(dot)
		case pipeline.FormatPDF:
			data, err = ratsnest.RenderPDF(dot)
		case pipeline.FormatPNG:
			data, err = ratsnest.RenderPNG(dot, 2.0)
		}
		if err != nil {
			spin.StopWithError("Rendering failed")
			return err
		}
		spin.Stop()
	}

	path := opts.output
	if path == "" {
		path = strings.TrimSuffix(input, filepath.Ext(input)) + "." + opts.format
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	printSuccess("Rendered ratsnest (wire length %.2f)", opt.TotalWireLength())
	printStats(len(opt.Components()), len(springs), false)
	printFile(path)
	printNextStep("Optimize the placement", "boardwalk place "+input)
	return nil
}
