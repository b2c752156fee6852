// Package rmcmd implements the `context rm` command.
package rmcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/dirctx/cmd/context/shared"
)

// Command implements `context rm`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the rm command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "rm <key>",
		Short: "Remove a value from the working directory (inherited values stay visible)",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	return c.ctx.Run(cmd, append([]string{"rm"}, args...))
}
