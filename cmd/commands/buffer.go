package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/b97tsk/asyncbridge"
)

// NewBufferCommand returns the buffer subcommand.
func NewBufferCommand() *cli.Command {
	return &cli.Command{
		Name:      "buffer",
		Usage:     "Pipe a file into a write buffer and print its size",
		ArgsUsage: "FILE",
		Action: func(ctx context.Context, cmd *cli.Command) error {
			if cmd.Args().Len() != 1 {
				return errors.New("buffer: expected exactly one FILE argument")
			}

			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			return pipeFile(a, cmd.Args().First(), cmd.Root().Writer)
		},
	}
}

func pipeFile(a *app, path string, out io.Writer) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	buf := asyncbridge.NewWriteBuffer(a.executor)

	n, err := io.Copy(buf, f)
	if err != nil {
		return fmt.Errorf("pipe %s: %w", path, err)
	}

	a.logger.Debug("file piped", "path", path, "bytes", n)

	fmt.Fprintf(out, "buffer size: %d\n", buf.Size())
	return nil
}
