// Package config loads the configuration of the asyncbridge demo.
package config

import (
	"fmt"
	"time"

	"github.com/b97tsk/asyncbridge/internal/logging"
)

// Config is the root configuration.
type Config struct {
	Executor ExecutorConfig `json:"executor" yaml:"executor"`
	Log      LogConfig      `json:"log" yaml:"log"`
	Demo     DemoConfig     `json:"demo" yaml:"demo"`
}

// ExecutorConfig configures the task executor.
type ExecutorConfig struct {
	MaxWorkers      int64 `json:"max_workers" yaml:"max_workers"` // 0 = unbounded
	PropagatePanics bool  `json:"propagate_panics" yaml:"propagate_panics"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // "debug" | "info" | "warn" | "error"
	Format string `json:"format" yaml:"format"` // "text" | "json"
}

// DemoConfig configures the demo commands.
type DemoConfig struct {
	Message string `json:"message" yaml:"message"`
	Timeout string `json:"timeout" yaml:"timeout"` // Go duration, e.g. "5s"
}

// TimeoutDuration returns Timeout parsed. Load has validated it already.
func (d DemoConfig) TimeoutDuration() time.Duration {
	t, _ := time.ParseDuration(d.Timeout)
	return t
}

func (c *Config) validate() error {
	if c.Executor.MaxWorkers < 0 {
		return fmt.Errorf("executor.max_workers must not be negative, got %d", c.Executor.MaxWorkers)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case logging.FormatText, logging.FormatJSON:
	default:
		return fmt.Errorf("log.format must be %q or %q, got %q", logging.FormatText, logging.FormatJSON, c.Log.Format)
	}
	if d, err := time.ParseDuration(c.Demo.Timeout); err != nil || d <= 0 {
		return fmt.Errorf("demo.timeout must be a positive duration, got %q", c.Demo.Timeout)
	}
	return nil
}
