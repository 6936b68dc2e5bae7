package cmd

import (
	"fmt"
	"math"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/vlist/pkg/errors"
	"github.com/go-drift/vlist/pkg/virtual"
)

type rangeOptions struct {
	offset   float64
	viewport float64
	itemSize float64
	count    int
	overscan int
	prev     float64
}

func newRangeCommand(global *globalOptions) *cobra.Command {
	opts := &rangeOptions{}
	c := &cobra.Command{
		Use:   "range",
		Short: "Compute the visible and render range for one scroll position",
		Long: `range evaluates the fixed-size range calculation once. With --prev the
overscan is biased toward the scroll direction.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.count < 0 {
				return errors.Config("cmd.range", errors.ErrNegativeCount)
			}
			if !(opts.itemSize > 0) || math.IsInf(opts.itemSize, 1) {
				return errors.Config("cmd.range", fmt.Errorf("--item-size %v: %w", opts.itemSize, errors.ErrInvalidItemSize))
			}
			dir := virtual.DirectionNone
			if cmd.Flags().Changed("prev") {
				dir = virtual.DirectionOf(opts.prev, opts.offset)
			}
			r := virtual.CalculateVirtualRange(opts.offset, opts.viewport, opts.itemSize, opts.count, opts.overscan, dir)

			useColor, err := colorEnabled(global.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			visible := colored(useColor, color.FgGreen)
			render := colored(useColor, color.FgYellow)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "visible %s  render %s  direction %s\n",
				visible.Sprint(spanText(r.Visible())), render.Sprint(spanText(r.Render())), dir)
			return err
		},
	}
	c.Flags().Float64Var(&opts.offset, "offset", 0, "scroll offset")
	c.Flags().Float64Var(&opts.viewport, "viewport", 0, "viewport size")
	c.Flags().Float64Var(&opts.itemSize, "item-size", 1, "fixed item size")
	c.Flags().IntVar(&opts.count, "count", 0, "item count")
	c.Flags().IntVar(&opts.overscan, "overscan", virtual.DefaultOverscan, "items rendered beyond each edge")
	c.Flags().Float64Var(&opts.prev, "prev", 0, "previous scroll offset, enables directional overscan")
	return c
}

func spanText(r virtual.Range) string {
	if r.Empty() {
		return "none"
	}
	return fmt.Sprintf("%d-%d", r.StartIndex, r.EndIndex)
}
