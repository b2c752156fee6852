// Package mcpcmd implements the `context mcp` command.
package mcpcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/dirctx/cmd/context/shared"
	internalmcp "github.com/go-ports/dirctx/internal/mcp"
)

// Command implements `context mcp`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the mcp command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "mcp",
		Short: "Start the context MCP server (stdio transport)",
		Args:  cobra.NoArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, _ []string) error {
	loc, err := c.ctx.Locations()
	if err != nil {
		return err
	}
	svc, err := c.ctx.Service(loc.ConfigPath)
	if err != nil {
		return err
	}
	return internalmcp.Serve(cmd.Context(), svc, loc.WorkingDir)
}
