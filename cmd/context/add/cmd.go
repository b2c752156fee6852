// Package addcmd implements the `context add` command.
package addcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/dirctx/cmd/context/shared"
)

// Command implements `context add`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the add command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "add <key> <value>",
		Short: "Set a value on the working directory",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	return c.ctx.Run(cmd, append([]string{"add"}, args...))
}
