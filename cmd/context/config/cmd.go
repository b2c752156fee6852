// Package configcmd implements the `context config` command group.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/go-ports/dirctx/cmd/context/shared"
	"github.com/go-ports/dirctx/internal/config"
)

// Command implements `context config`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the config command group.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "config",
		Short: "Print the config file path, or manage the config file",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.runPath,
	}
	c.cmd.AddCommand(
		newConfigInit(ctx),
		newConfigShow(ctx),
	)
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) runPath(cmd *cobra.Command, args []string) error {
	return c.ctx.Run(cmd, append([]string{"config"}, args...))
}

// ---------------------------------------------------------------------------
// config init
// ---------------------------------------------------------------------------

func newConfigInit(ctx *shared.Context) *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create an empty config file and its directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _, err := config.ResolveConfigPath(ctx.ConfigPath, ctx.Env)
			if err != nil {
				return err
			}
			svc, err := ctx.Service(path)
			if err != nil {
				return err
			}
			written, err := svc.Init(force)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !written {
				fmt.Fprintf(out, "Config already exists at %s\n", svc.ConfigPath())
				fmt.Fprintln(out, "Use --force to overwrite.")
				return nil
			}
			fmt.Fprintf(out, "Created %s\n", svc.ConfigPath())
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config, discarding every value in it")
	return cmd
}

// ---------------------------------------------------------------------------
// config show
// ---------------------------------------------------------------------------

func newConfigShow(ctx *shared.Context) *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show the resolved config file, its source, and the working directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			loc, err := ctx.Locations()
			if err != nil {
				return err
			}
			svc, err := ctx.Service(loc.ConfigPath)
			if err != nil {
				return err
			}
			st, err := svc.Open(loc.WorkingDir)
			if err != nil {
				return err
			}
			data := map[string]any{
				"config_path":       st.ConfigPath(),
				"config_source":     loc.ConfigSource,
				"working_directory": st.WorkingDir(),
				"directories":       len(st.Paths()),
			}
			b, err := yaml.Marshal(data)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), string(b))
			return nil
		},
	}
}
