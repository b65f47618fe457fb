package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tailscale/hujson"
	"gopkg.in/yaml.v3"
)

// Environment variables that override the config file.
const (
	EnvConfig     = "ASYNCBRIDGE_CONFIG"
	EnvLogLevel   = "ASYNCBRIDGE_LOG_LEVEL"
	EnvLogFormat  = "ASYNCBRIDGE_LOG_FORMAT"
	EnvMaxWorkers = "ASYNCBRIDGE_MAX_WORKERS"
)

// DefaultPath returns $ASYNCBRIDGE_CONFIG, or asyncbridge.jsonc in the
// working directory.
func DefaultPath() string {
	if p := os.Getenv(EnvConfig); p != "" {
		return p
	}
	return "asyncbridge.jsonc"
}

// Load reads a JSONC or YAML config file (chosen by extension), applies
// environment overrides and defaults, and validates the result.
// A missing file is not an error; defaults are used instead.
func Load(path string) (*Config, error) {
	var cfg Config

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
		case err != nil:
			return nil, fmt.Errorf("read config: %w", err)
		default:
			if err := decode(path, data, &cfg); err != nil {
				return nil, fmt.Errorf("unmarshal config: %w", err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func decode(path string, data []byte, cfg *Config) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return yaml.Unmarshal(data, cfg)
	default:
		std, err := hujson.Standardize(data)
		if err != nil {
			return err
		}
		return json.Unmarshal(std, cfg)
	}
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv(EnvLogLevel); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv(EnvMaxWorkers); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("parse %s: %w", EnvMaxWorkers, err)
		}
		cfg.Executor.MaxWorkers = n
	}
	return nil
}

// applyDefaults fills in zero-value fields.
func applyDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	cfg.Log.Format = strings.ToLower(cfg.Log.Format)
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
	if cfg.Demo.Message == "" {
		cfg.Demo.Message = "hello, continuation!"
	}
	if cfg.Demo.Timeout == "" {
		cfg.Demo.Timeout = "5s"
	}
}
