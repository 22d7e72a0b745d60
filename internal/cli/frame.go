package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// frameFlags holds options for the frame command.
type frameFlags struct {
	renderFlags
	offset float64
	index  int
	snap   bool
	output string
}

// frameCommand creates the frame command for rendering a single pass.
func (c *CLI) frameCommand() *cobra.Command {
	var f frameFlags

	cmd := &cobra.Command{
		Use:   "frame",
		Short: "Render one layout pass to SVG, PNG or JSON",
		Long: `Render one layout pass of a catalog at a scroll offset.

The offset is the scroll position in points. --index centers an item instead,
and --snap moves the offset to the nearest item's resting position.`,
		Example: `  # Render the default catalog centered on the third card
  carousel frame --index 2 -o frame.svg

  # Render a custom catalog mid-scroll to PNG and JSON
  carousel frame -c photos.toml --offset 315 -f png,json -o out/frame`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runFrame(cmd, f)
		},
	}

	f.register(cmd)
	cmd.Flags().Float64Var(&f.offset, "offset", 0, "scroll offset in points")
	cmd.Flags().IntVar(&f.index, "index", -1, "center this item (overrides --offset)")
	cmd.Flags().BoolVar(&f.snap, "snap", false, "snap the offset to the nearest item")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output path (\"-\" for stdout; default frame.<format>)")

	return cmd
}

func (c *CLI) runFrame(cmd *cobra.Command, f frameFlags) error {
	ctx := cmd.Context()
	s, err := c.newSession(ctx, cmd, f.renderFlags)
	if err != nil {
		return err
	}
	defer s.Close()

	opts := s.opts
	opts.Offset = f.offset
	opts.Snap = f.snap
	if cmd.Flags().Changed("index") {
		idx := f.index
		opts.Index = &idx
	}

	res, err := s.runner.Execute(ctx, s.car, opts)
	if err != nil {
		return err
	}

	paths, err := writeArtifacts(artifactWriteParams{
		artifacts: res.Artifacts,
		formats:   opts.Formats,
		base:      "frame",
		output:    f.output,
	})
	if err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	if f.output != "-" {
		printResult(res, paths)
	}
	return nil
}
