package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-drift/vlist/internal/config"
)

func newVersionCommand(global *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			useColor, err := colorEnabled(global.color, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			bold := colored(useColor, color.FgCyan, color.Bold)
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "vlist %s (built %s, config schema %s)\n",
				bold.Sprint(Version), BuildTime, config.DefaultVersion)
			return err
		},
	}
}
