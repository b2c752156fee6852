// Package rootcmd wires the root cobra.Command for the context CLI binary.
package rootcmd

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/spf13/cobra"

	addcmd "github.com/go-ports/dirctx/cmd/context/add"
	configcmd "github.com/go-ports/dirctx/cmd/context/config"
	mcpcmd "github.com/go-ports/dirctx/cmd/context/mcp"
	printcmd "github.com/go-ports/dirctx/cmd/context/print"
	rmcmd "github.com/go-ports/dirctx/cmd/context/rm"
	"github.com/go-ports/dirctx/cmd/context/shared"
	"github.com/go-ports/dirctx/internal/buildinfo"
)

const long = `Directory-scoped key-value context.

Values are attached to directories. Reading a key from a directory walks up
through its parents to the filesystem root; the nearest directory that sets
the key wins.

  context                 print every value visible from here
  context <key>           print one value (null when unset)
  context add <key> <v>   set a value on this directory
  context rm <key>        remove a value from this directory
  context config          print the config file path`

// New creates and returns the root cobra.Command for the context CLI.
func New() *cobra.Command {
	return NewWithContext(shared.NewContext())
}

// NewWithContext is New with a caller-supplied Context, letting tests swap
// the filesystem, environment, or working directory lookup.
func NewWithContext(ctx *shared.Context) *cobra.Command {
	root := &cobra.Command{
		Use:           "context [key]",
		Short:         "Directory-scoped key-value context",
		Long:          long,
		Version:       buildinfo.Summary(),
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if !slices.Contains(shared.ValidFormats, ctx.Format) {
				return fmt.Errorf("invalid format %q: must be one of %v", ctx.Format, shared.ValidFormats)
			}
			level := slog.LevelWarn
			if ctx.Verbose {
				level = slog.LevelDebug
			}
			slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error { return ctx.Run(cmd, args) },
	}

	f := root.PersistentFlags()
	f.StringVarP(&ctx.ConfigPath, "config", "c", "",
		"Config file (default: $CONTEXT_CONFIG → $XDG_CONFIG_HOME/context/context_config.json → $HOME/context/context_config.json)")
	f.StringVarP(&ctx.WorkingDir, "pwd", "p", "", "Directory to resolve from (default: current directory)")
	f.StringVar(&ctx.Format, "format", shared.FormatJSON, "Output format (json|yaml)")
	f.BoolVar(&ctx.Strict, "strict", false, "Fail on an unreadable or corrupt config file instead of treating it as empty")
	f.BoolVarP(&ctx.Verbose, "verbose", "v", false, "Verbose logging to stderr")

	root.AddCommand(
		printcmd.New(ctx).Cmd(),
		addcmd.New(ctx).Cmd(),
		rmcmd.New(ctx).Cmd(),
		configcmd.New(ctx).Cmd(),
		mcpcmd.New(ctx).Cmd(),
	)

	return root
}
