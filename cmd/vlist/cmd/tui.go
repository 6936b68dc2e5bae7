package cmd

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/go-drift/vlist/internal/tui"
)

const defaultTUITotal = 10000

func newTUICommand(global *globalOptions) *cobra.Command {
	var (
		total int
		delay time.Duration
	)
	c := &cobra.Command{
		Use:   "tui",
		Short: "Scroll a generated list interactively",
		Long: `tui opens a full-screen list with one row per item. Labels are served
page by page from a generated source; pages.size and pages.prefetch from the
config control how they are fetched.

When --total is not set the configured list.count is used, or 10000 when
that is zero.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := global.resolve()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("total") {
				total = r.Count
				if total == 0 {
					total = defaultTUITotal
				}
			}
			return tui.Run(cmd.Context(), r, tui.SyntheticLoader(total, delay),
				tea.WithInput(cmd.InOrStdin()), tea.WithOutput(cmd.OutOrStdout()))
		},
	}
	c.Flags().IntVar(&total, "total", defaultTUITotal, "number of generated items")
	c.Flags().DurationVar(&delay, "delay", 150*time.Millisecond, "simulated latency per page")
	return c
}
