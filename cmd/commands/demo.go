package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/urfave/cli/v3"
)

// NewDemoCommand returns the demo subcommand, which runs buffer and cb
// together.
func NewDemoCommand() *cli.Command {
	return &cli.Command{
		Name:      "demo",
		Usage:     "Pipe FILE into a write buffer while a message goes through the bridge",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("demo: expected exactly one FILE argument")
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			out := cmd.Root().Writer

			type result struct {
				msg string
				err error
			}

			resc := make(chan result, 1)
			go func() {
				msg, err := continuation(ctx, a, a.cfg.Demo.Message, a.cfg.Demo.TimeoutDuration())
				resc <- result{msg, err}
			}()

			if err := pipeFile(a, cmd.Args().First(), out); err != nil {
				return err
			}

			res := <-resc
			if res.err != nil {
				return res.err
			}

			fmt.Fprintf(out, "got message: %s\n", res.msg)
			return nil
		},
	}
}
