package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

var ErrInvalidLogConfig = errors.New("invalid_log_config")

// LogConfig controls the process logger. Logs go to stderr unless File is
// set, since the CLI writes its results to stdout.
type LogConfig struct {
	Level       string `env:"LOG_LEVEL" envDefault:"info"`
	Pretty      bool   `env:"LOG_PRETTY" envDefault:"false"`
	SampleEvery int    `env:"LOG_SAMPLE_EVERY" envDefault:"0"`
	File        string `env:"LOG_FILE"`
	MaxMB       int    `env:"LOG_MAX_MB" envDefault:"10"`
}

var logLevels = map[string]bool{
	"trace": true, "debug": true, "info": true, "warn": true,
	"error": true, "fatal": true, "panic": true, "disabled": true,
}

func (c LogConfig) Validate() error {
	if !logLevels[strings.ToLower(strings.TrimSpace(c.Level))] {
		return fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidLogConfig, c.Level)
	}
	if c.SampleEvery < 0 {
		return fmt.Errorf("%w: LOG_SAMPLE_EVERY must not be negative", ErrInvalidLogConfig)
	}
	if strings.TrimSpace(c.File) != "" && c.MaxMB <= 0 {
		return fmt.Errorf("%w: LOG_MAX_MB must be positive when LOG_FILE is set", ErrInvalidLogConfig)
	}
	return nil
}

func LoadLog() (LogConfig, error) {
	var cfg LogConfig
	if err := env.Parse(&cfg); err != nil {
		return cfg, err
	}
	return cfg, cfg.Validate()
}
