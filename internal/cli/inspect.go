package cli

import (
	"fmt"
	"math"
	"path/filepath"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/carousel/pkg/carousel"
	"github.com/matzehuels/carousel/pkg/errors"
	"github.com/matzehuels/carousel/pkg/frame"
)

// inspectFlags holds options for the inspect command.
type inspectFlags struct {
	catalog string
	width   float64
	height  float64
	offset  float64
	index   int
	snap    bool
}

// inspectCommand creates the inspect command for printing per-card metrics.
func (c *CLI) inspectCommand() *cobra.Command {
	var f inspectFlags

	cmd := &cobra.Command{
		Use:   "inspect [frame.json]",
		Short: "Print the per-card metrics of a pass as a table",
		Long: `Print every card's distance from the viewport center, scaled size and
stack order. With a frame file the stored pass is shown; otherwise a pass of
the catalog is computed at the given offset.`,
		Example: `  # Inspect the default catalog centered on the second card
  carousel inspect --index 1

  # Inspect a rendered frame
  carousel inspect frame.json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pass, err := c.inspectPass(cmd, f, args)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderCardTable(pass))
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.catalog, "catalog", "c", "", "catalog file (TOML)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "viewport width in points")
	cmd.Flags().Float64Var(&f.height, "height", 0, "viewport height in points")
	cmd.Flags().Float64Var(&f.offset, "offset", 0, "scroll offset in points")
	cmd.Flags().IntVar(&f.index, "index", -1, "center this item (overrides --offset)")
	cmd.Flags().BoolVar(&f.snap, "snap", false, "snap the offset to the nearest item")

	return cmd
}

// inspectPass reads the pass from a frame file or lays out the catalog.
func (c *CLI) inspectPass(cmd *cobra.Command, f inspectFlags, args []string) (carousel.Pass, error) {
	if len(args) == 1 {
		fr, err := frame.ReadFile(filepath.Clean(args[0]))
		if err != nil {
			return carousel.Pass{}, err
		}
		return fr.Pass(), nil
	}

	cfg, err := c.loadConfig()
	if err != nil {
		return carousel.Pass{}, err
	}
	car, _, err := c.loadCarousel(cmd.Context(), cfg, f.catalog)
	if err != nil {
		return carousel.Pass{}, err
	}

	viewport := cfg.Viewport.Rect()
	if cmd.Flags().Changed("width") {
		viewport.W = f.width
	}
	if cmd.Flags().Changed("height") {
		viewport.H = f.height
	}
	if !(viewport.W > 0) || !(viewport.H > 0) {
		return carousel.Pass{}, errors.New(errors.ErrCodeInvalidInput, "viewport must have a positive size, got %vx%v", viewport.W, viewport.H)
	}

	offset := f.offset
	switch {
	case cmd.Flags().Changed("index"):
		if f.index < 0 || f.index >= car.Len() {
			return carousel.Pass{}, errors.New(errors.ErrCodeInvalidInput, "index %d out of range [0, %d)", f.index, car.Len())
		}
		offset = car.SnapTarget(f.index)
	case f.snap:
		offset = car.Snap(offset, viewport.W)
	}
	return car.Layout(offset, viewport), nil
}

// renderCardTable formats a pass as a bordered table in item order. The
// focused card is highlighted and off-screen cards are dimmed.
func renderCardTable(p carousel.Pass) string {
	focused := -1
	if fc, ok := p.Focused(); ok {
		focused = fc.Item.Index
	}

	rows := make([][]string, 0, len(p.Cards))
	visible := make([]bool, len(p.Cards))
	isFocused := make([]bool, len(p.Cards))
	for i, card := range p.Cards {
		visible[i] = card.Rect.Intersects(p.Viewport)
		isFocused[i] = card.Item.Index == focused

		marker := "  "
		if isFocused[i] {
			marker = "▸ "
		}
		rows = append(rows, []string{
			marker,
			strconv.Itoa(card.Item.Index),
			formatNumber(card.Sample.DistanceFromCenter),
			formatNumber(card.Metrics.ScaledSize),
			formatNumber(card.Metrics.StackOrder),
			card.Item.Source,
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "#", "Distance", "Size", "Stack", "Source").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if row < 0 || row >= len(rows) {
				return lipgloss.NewStyle()
			}
			switch {
			case isFocused[row]:
				return StyleFocus
			case !visible[row]:
				return StyleDim
			}
			return StyleValue
		})

	summary := fmt.Sprintf("offset %s · viewport %sx%s · %d/%d visible",
		formatNumber(p.Offset), formatNumber(p.Viewport.W), formatNumber(p.Viewport.H),
		len(p.Visible()), len(p.Cards))
	return t.Render() + "\n" + StyleDim.Render(summary)
}

// formatNumber prints a float with at most two decimals and no trailing zeros.
func formatNumber(v float64) string {
	return strconv.FormatFloat(math.Round(v*100)/100, 'f', -1, 64)
}
