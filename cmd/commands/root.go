package commands

import (
	"github.com/urfave/cli/v3"

	"github.com/b97tsk/asyncbridge/internal/config"
)

// NewRootCommand returns the top-level CLI command.
func NewRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "asyncbridge",
		Usage: "Exercise the callback-to-blocking bridge",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (.jsonc or .yaml)",
				Value:   config.DefaultPath(),
			},
			&cli.BoolFlag{
				Name:  "debug",
				Usage: "Enable debug logging",
			},
		},
		Commands: []*cli.Command{
			NewBufferCommand(),
			NewCbCommand(),
			NewDemoCommand(),
		},
	}
}
