package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

// DefaultSweepSteps is the number of frames rendered when --steps is unset.
const DefaultSweepSteps = 24

// sweepFlags holds options for the sweep command.
type sweepFlags struct {
	renderFlags
	from   float64
	to     float64
	steps  int
	outDir string
}

// sweepCommand creates the sweep command for rendering a scroll animation.
func (c *CLI) sweepCommand() *cobra.Command {
	var f sweepFlags

	cmd := &cobra.Command{
		Use:   "sweep",
		Short: "Render a series of passes across a scroll range",
		Long: `Render evenly spaced layout passes between two scroll offsets.

Frames are written to the output directory as frame-000.<format>,
frame-001.<format> and so on. Without --to the sweep ends at the last item.`,
		Example: `  # Render 24 frames across the whole default catalog
  carousel sweep -o frames

  # Render 60 PNG frames over the first three items
  carousel sweep --to 420 --steps 60 -f png -o frames`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runSweep(cmd, f)
		},
	}

	f.register(cmd)
	cmd.Flags().Float64Var(&f.from, "from", 0, "first scroll offset")
	cmd.Flags().Float64Var(&f.to, "to", 0, "last scroll offset (default: end of content)")
	cmd.Flags().IntVar(&f.steps, "steps", DefaultSweepSteps, "number of frames")
	cmd.Flags().StringVarP(&f.outDir, "output", "o", "frames", "output directory")

	return cmd
}

func (c *CLI) runSweep(cmd *cobra.Command, f sweepFlags) error {
	ctx := cmd.Context()
	s, err := c.newSession(ctx, cmd, f.renderFlags)
	if err != nil {
		return err
	}
	defer s.Close()

	to := f.to
	if !cmd.Flags().Changed("to") {
		to = s.car.MaxOffset(s.opts.Width)
	}

	prog := newProgress(loggerFromContext(ctx))
	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %d frames...", f.steps))
	spinner.Start()

	results, err := s.runner.Sweep(ctx, s.car, s.opts, f.from, to, f.steps)
	if err != nil {
		spinner.StopWithError("Sweep failed")
		return err
	}

	var written []string
	for i, res := range results {
		spinner.SetMessage(fmt.Sprintf("Writing frame %d/%d...", i+1, len(results)))
		paths, err := writeArtifacts(artifactWriteParams{
			artifacts: res.Artifacts,
			formats:   s.opts.Formats,
			base:      filepath.Join(f.outDir, fmt.Sprintf("frame-%03d", i)),
		})
		if err != nil {
			spinner.StopWithError("Writing frames failed")
			return fmt.Errorf("write frame %d: %w", i, err)
		}
		written = append(written, paths...)
	}
	spinner.Stop()

	prog.done(fmt.Sprintf("Rendered %d frames", len(results)))
	printSuccess("Swept offsets %.1f to %.1f", f.from, to)
	printFile(f.outDir)
	printDetail("%d files", len(written))
	return nil
}
