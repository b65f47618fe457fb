package commands

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/urfave/cli/v3"

	"github.com/b97tsk/asyncbridge"
	"github.com/b97tsk/asyncbridge/internal/config"
	"github.com/b97tsk/asyncbridge/internal/logging"
)

// app holds what every subcommand needs: configuration, a logger, and an
// executor whose loop runs in goroutines.
type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	executor *asyncbridge.Executor
	wg       sync.WaitGroup // tracks loop goroutines
}

func newApp(cmd *cli.Command) (*app, error) {
	root := cmd.Root()

	cfg, err := config.Load(root.String("config"))
	if err != nil {
		return nil, err
	}
	if root.Bool("debug") {
		cfg.Log.Level = "debug"
	}

	logger, err := logging.New(root.ErrWriter, cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		return nil, fmt.Errorf("set up logging: %w", err)
	}

	a := &app{cfg: cfg, logger: logger}

	loop := new(asyncbridge.Loop)
	loop.Autorun(func() { a.wg.Go(loop.Run) })

	a.executor = asyncbridge.NewExecutor(loop, asyncbridge.ExecutorConfig{
		MaxWorkers:      cfg.Executor.MaxWorkers,
		PropagatePanics: cfg.Executor.PropagatePanics,
		Logger:          logger,
	})

	return a, nil
}

// Close waits for outstanding tasks and loop goroutines.
func (a *app) Close() {
	a.executor.Wait()
	a.wg.Wait()
}
