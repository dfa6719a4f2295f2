package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/boardwalk-eda/boardwalk/pkg/pipeline"
)

// watchOpts holds the command-line flags for the watch command.
type watchOpts struct {
	configPath string  // TOML tuning file overlaid on the default config
	iterations int     // solver iteration cap
	dt         float64 // integration timestep
	snap       bool    // snap rotations to 90° multiples after the run
}

// watchCommand creates the watch command, an interactive view of a placement
// run. It always recomputes so there is something to watch.
func (c *CLI) watchCommand() *cobra.Command {
	opts := watchOpts{}

	cmd := &cobra.Command{
		Use:   "watch [board.json]",
		Short: "Run the optimizer with a live convergence display",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runWatch(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "TOML file overriding the default solver configuration")
	cmd.Flags().IntVarP(&opts.iterations, "iterations", "n", pipeline.DefaultIterations, "maximum solver iterations")
	cmd.Flags().Float64Var(&opts.dt, "dt", pipeline.DefaultDt, "integration timestep")
	cmd.Flags().BoolVar(&opts.snap, "snap", false, "snap rotations to 90° multiples after the run")

	return cmd
}

// =============================================================================
// Messages
// =============================================================================

// stepMsg carries per-iteration solver progress into the model.
type stepMsg struct {
	iteration int
	energy    float64
}

// doneMsg carries the pipeline result once the run finishes.
type doneMsg struct {
	result *pipeline.Result
	err    error
}

// =============================================================================
// Model
// =============================================================================

// watchModel is the bubbletea model for the live convergence display.
type watchModel struct {
	boardName string
	cap       int

	iteration int
	energy    float64

	result *pipeline.Result
	err    error
	cancel context.CancelFunc
}

func (m watchModel) Init() tea.Cmd {
	return nil
}

func (m watchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			m.cancel()
			return m, tea.Quit
		}
	case stepMsg:
		m.iteration = msg.iteration + 1
		m.energy = msg.energy
	case doneMsg:
		m.result = msg.result
		m.err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

func (m watchModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Placing " + m.boardName))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("q quit"))
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("iteration"),
		StyleNumber.Render(fmt.Sprintf("%d/%d", m.iteration, m.cap))))
	b.WriteString(fmt.Sprintf("  %s %s\n",
		StyleDim.Render("energy   "),
		StyleNumber.Render(fmt.Sprintf("%.4g", m.energy))))
	b.WriteString("\n")
	b.WriteString("  " + renderBar(m.iteration, m.cap, 40))
	b.WriteString("\n")

	return b.String()
}

// renderBar draws a fixed-width progress bar for the iteration count.
func renderBar(done, total, width int) string {
	if total <= 0 {
		total = 1
	}
	filled := done * width / total
	if filled > width {
		filled = width
	}
	bar := StyleHighlight.Render(strings.Repeat("█", filled)) +
		StyleDim.Render(strings.Repeat("░", width-filled))
	return bar
}

// =============================================================================
// Command
// =============================================================================

// runWatch executes the pipeline in the background and feeds its progress
// callback into a bubbletea program.
func (c *CLI) runWatch(ctx context.Context, input string, opts *watchOpts) error {
	runner, err := c.newRunner(true)
	if err != nil {
		return err
	}
	defer runner.Close()

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	model := watchModel{
		boardName: filepath.Base(input),
		cap:       opts.iterations,
		cancel:    cancel,
	}
	p := tea.NewProgram(model)

	go func() {
		result, err := runner.Execute(runCtx, pipeline.Options{
			BoardPath:  input,
			ConfigPath: opts.configPath,
			Iterations: opts.iterations,
			Dt:         opts.dt,
			Snap:       opts.snap,
			Refresh:    true,
			Formats:    []string{pipeline.FormatReport},
			Logger:     newLogger(io.Discard, LogInfo),
			Callback: func(iteration int, energy float64) {
				p.Send(stepMsg{iteration: iteration, energy: energy})
			},
		})
		p.Send(doneMsg{result: result, err: err})
	}()

	final, err := p.Run()
	if err != nil {
		return err
	}

	m := final.(watchModel)
	if m.err != nil {
		return m.err
	}
	if m.result == nil {
		printWarning("Cancelled after %d iterations", m.iteration)
		return nil
	}

	if m.result.Converged {
		printSuccess("Converged after %d iterations (wire length %.2f)", m.result.Iterations, m.result.WireLength)
	} else {
		printWarning("Stopped at the iteration cap (wire length %.2f)", m.result.WireLength)
	}
	printStats(m.result.Stats.ComponentCount, m.result.Stats.SpringCount, false)
	if report, ok := m.result.Artifacts[pipeline.FormatReport]; ok {
		printNewline()
		fmt.Print(string(report))
	}
	return nil
}
