// Package printcmd implements the `context print` command.
package printcmd

import (
	"github.com/spf13/cobra"

	"github.com/go-ports/dirctx/cmd/context/shared"
)

// Command implements `context print`.
type Command struct {
	ctx *shared.Context
	cmd *cobra.Command
}

// New creates the print command.
func New(ctx *shared.Context) *Command {
	c := &Command{ctx: ctx}
	c.cmd = &cobra.Command{
		Use:   "print [key]",
		Short: "Print every visible value, or the resolved value of one key",
		Args:  cobra.ArbitraryArgs,
		RunE:  c.run,
	}
	return c
}

// Cmd returns the cobra command.
func (c *Command) Cmd() *cobra.Command { return c.cmd }

func (c *Command) run(cmd *cobra.Command, args []string) error {
	return c.ctx.Run(cmd, append([]string{"print"}, args...))
}
