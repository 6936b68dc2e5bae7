// Package cmd implements the vlist CLI commands.
//
// The root command carries the global flags; subcommands plan scroll
// sequences, evaluate single ranges and run the interactive host.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/go-drift/vlist/internal/config"
	"github.com/go-drift/vlist/pkg/errors"
)

// Version information set at build time.
var (
	Version   = "0.1.0-dev"
	BuildTime = "unknown"
)

type globalOptions struct {
	configPath string
	color      string
	verbose    bool
}

// NewRootCommand returns the vlist command tree.
func NewRootCommand() *cobra.Command {
	opts := &globalOptions{}
	root := &cobra.Command{
		Use:   "vlist",
		Short: "Headless list virtualization engine",
		Long: `vlist computes which items of a long list are visible and which
should be rendered for a given scroll position.

Settings are read from vlist.yaml or vlist.toml in the current directory
unless --config names a file.`,
		Version:       fmt.Sprintf("%s (built %s)", Version, BuildTime),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := colorEnabled(opts.color, cmd.OutOrStdout()); err != nil {
				return err
			}
			errors.SetHandler(&errors.LogHandler{Verbose: opts.verbose, Out: cmd.ErrOrStderr()})
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.configPath, "config", "", "config file (default: vlist.yaml or vlist.toml in the working directory)")
	root.PersistentFlags().StringVar(&opts.color, "color", "auto", "colorize output (auto|on|off)")
	root.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "log errors with kinds and stack traces")

	root.AddCommand(newPlanCommand(opts))
	root.AddCommand(newRangeCommand(opts))
	root.AddCommand(newTUICommand(opts))
	root.AddCommand(newVersionCommand(opts))
	return root
}

// Execute runs the CLI with os.Args.
func Execute() error {
	root := NewRootCommand()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(root.ErrOrStderr(), "Error: %v\n", err)
		return err
	}
	return nil
}

// resolve loads --config if given, otherwise the optional file in the
// working directory.
func (o *globalOptions) resolve() (*config.Resolved, error) {
	if o.configPath != "" {
		return config.ResolveFile(o.configPath)
	}
	wd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}
	return config.Resolve(wd)
}

// colorEnabled interprets --color for w. auto enables color only when w is
// a terminal and NO_COLOR is unset.
func colorEnabled(mode string, w io.Writer) (bool, error) {
	switch mode {
	case "on":
		return true, nil
	case "off":
		return false, nil
	case "auto", "":
		if os.Getenv("NO_COLOR") != "" {
			return false, nil
		}
		f, ok := w.(*os.File)
		return ok && isTerminal(f), nil
	default:
		return false, errors.Config("cmd.color", fmt.Errorf("invalid --color %q (want auto, on or off)", mode))
	}
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// colored returns a color forced on or off regardless of fatih/color's own
// terminal detection.
func colored(enabled bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if enabled {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c
}
