package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

type ServeConfig struct {
	Addr            string        `env:"SERVE_ADDR" envDefault:"127.0.0.1:8088"`
	SSEPingInterval time.Duration `env:"SSE_PING_INTERVAL" envDefault:"15s"`
	MCPEnabled      bool          `env:"MCP_ENABLED" envDefault:"true"`
}

func LoadServe() (ServeConfig, error) {
	var cfg ServeConfig
	err := env.Parse(&cfg)
	return cfg, err
}
