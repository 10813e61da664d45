package config

import (
	"errors"
	"testing"
)

func TestLoadLogDefaults(t *testing.T) {
	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "info" || cfg.File != "" || cfg.Pretty {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadLogParse(t *testing.T) {
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("LOG_FILE", "/tmp/dice-client.log")
	t.Setenv("LOG_MAX_MB", "2")

	cfg, err := LoadLog()
	if err != nil {
		t.Fatalf("LoadLog() error = %v", err)
	}
	if cfg.Level != "DEBUG" || cfg.File != "/tmp/dice-client.log" || cfg.MaxMB != 2 {
		t.Fatalf("unexpected log config: %+v", cfg)
	}
}

func TestLoadLogRejectsInvalid(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
	}{
		{name: "level", env: map[string]string{"LOG_LEVEL": "loud"}},
		{name: "sampling", env: map[string]string{"LOG_SAMPLE_EVERY": "-1"}},
		{name: "file size", env: map[string]string{"LOG_FILE": "/tmp/x.log", "LOG_MAX_MB": "0"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := LoadLog(); !errors.Is(err, ErrInvalidLogConfig) {
				t.Fatalf("LoadLog() error = %v, want ErrInvalidLogConfig", err)
			}
		})
	}
}
