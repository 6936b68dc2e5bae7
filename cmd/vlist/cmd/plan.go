package cmd

import (
	"context"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/go-drift/vlist/internal/config"
	"github.com/go-drift/vlist/internal/snapshot"
)

type planOptions struct {
	offsets  []float64
	viewport float64
	format   string
	items    bool
}

func newPlanCommand(global *globalOptions) *cobra.Command {
	opts := &planOptions{}
	c := &cobra.Command{
		Use:   "plan [config files...]",
		Short: "Print the virtualizer state for a sequence of scroll offsets",
		Long: `plan builds a virtualizer from each config file (or the default config
when none are given), scrolls it through --offsets in order and prints one
snapshot per step. Step 0 is the state before any offset is applied.

Config files are planned concurrently; output keeps argument order.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var viewport *float64
			if cmd.Flags().Changed("viewport") {
				viewport = &opts.viewport
			}

			var resolved []*config.Resolved
			if len(args) == 0 {
				r, err := global.resolve()
				if err != nil {
					return err
				}
				resolved = append(resolved, r)
			} else {
				for _, path := range args {
					r, err := config.ResolveFile(path)
					if err != nil {
						return err
					}
					resolved = append(resolved, r)
				}
			}

			results, err := planAll(cmd.Context(), resolved, opts.offsets, viewport)
			if err != nil {
				return err
			}

			useColor, err := colorEnabled(global.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			var snaps []snapshot.Snapshot
			for _, r := range results {
				snaps = append(snaps, r...)
			}
			return snapshot.Write(cmd.OutOrStdout(), opts.format, snaps, snapshot.Style{Color: useColor, Items: opts.items})
		},
	}
	c.Flags().Float64SliceVar(&opts.offsets, "offsets", nil, "scroll offsets to apply in order (comma-separated)")
	c.Flags().Float64Var(&opts.viewport, "viewport", 0, "override the configured viewport size")
	c.Flags().StringVar(&opts.format, "format", snapshot.FormatText, "output format (text|yaml|msgpack)")
	c.Flags().BoolVar(&opts.items, "items", false, "list materialized items in text output")
	return c
}

// planAll plans every config concurrently and returns the snapshots in input
// order.
func planAll(ctx context.Context, resolved []*config.Resolved, offsets []float64, viewport *float64) ([][]snapshot.Snapshot, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	results := make([][]snapshot.Snapshot, len(resolved))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, r := range resolved {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			snaps, err := plan(r, offsets, viewport)
			if err != nil {
				return fmt.Errorf("%s: %w", r.Name, err)
			}
			results[i] = snaps
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func plan(r *config.Resolved, offsets []float64, viewport *float64) ([]snapshot.Snapshot, error) {
	v, source, err := r.Build(nil)
	if err != nil {
		return nil, err
	}
	defer v.Destroy()

	if viewport != nil {
		source.SetViewportSize(*viewport)
	}
	snaps := make([]snapshot.Snapshot, 0, len(offsets)+1)
	first, err := snapshot.FromState(r.Name, 0, v.State())
	if err != nil {
		return nil, err
	}
	snaps = append(snaps, first)
	for i, off := range offsets {
		source.SetScrollOffset(off)
		s, err := snapshot.FromState(r.Name, i+1, v.State())
		if err != nil {
			return nil, err
		}
		snaps = append(snaps, s)
	}
	return snaps, nil
}
