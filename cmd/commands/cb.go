package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/b97tsk/asyncbridge"
)

// NewCbCommand returns the cb subcommand.
func NewCbCommand() *cli.Command {
	return &cli.Command{
		Name:  "cb",
		Usage: "Push a message through the bridge and print it",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "message",
				Usage: "Message to push (defaults to demo.message)",
			},
			&cli.DurationFlag{
				Name:  "timeout",
				Usage: "How long to wait for the message (defaults to demo.timeout)",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			message := a.cfg.Demo.Message
			if cmd.IsSet("message") {
				message = cmd.String("message")
			}
			timeout := a.cfg.Demo.TimeoutDuration()
			if cmd.IsSet("timeout") {
				timeout = cmd.Duration("timeout")
			}

			msg, err := continuation(ctx, a, message, timeout)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.Root().Writer, "got message: %s\n", msg)
			return nil
		},
	}
}

// continuation hands message to a producer that pushes it from another
// goroutine, and waits for it to come back through the bridge.
func continuation(ctx context.Context, a *app, message string, timeout time.Duration) (string, error) {
	got := asyncbridge.NewFuture[string]()

	err := asyncbridge.Cb(a.executor, func(push func(string) error) {
		// Push from another goroutine, some time after Cb has returned.
		go func() {
			if err := push(message); err != nil {
				a.logger.Error("push failed", "error", err)
			}
		}()
	}, got.Callback())
	if err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	msg, err := got.Await(ctx)
	if err != nil {
		return "", fmt.Errorf("await message: %w", err)
	}

	return msg, nil
}
