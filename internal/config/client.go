package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

const DefaultEnvironmentID = "ead32e7f-5090-4060-9b60-97f68caa3cf8"

// SepoliaChainID is the one network the game supports.
const SepoliaChainID uint64 = 11155111

type ClientConfig struct {
	BackendURL    string `env:"BACKEND_URL" envDefault:"http://localhost:8001"`
	EnvironmentID string `env:"ENVIRONMENT_ID" envDefault:"ead32e7f-5090-4060-9b60-97f68caa3cf8"`

	WalletRPCURL     string `env:"WALLET_RPC_URL"`
	TargetChainID    uint64 `env:"TARGET_CHAIN_ID" envDefault:"11155111"`
	ChainName        string `env:"CHAIN_NAME" envDefault:"Sepolia Test Network"`
	ChainRPCURL      string `env:"CHAIN_RPC_URL" envDefault:"https://sepolia.infura.io/v3/"`
	ChainExplorerURL string `env:"CHAIN_EXPLORER_URL" envDefault:"https://sepolia.etherscan.io/"`

	FHEPublicKey  string `env:"FHE_PUBLIC_KEY"`
	FHERelayerURL string `env:"FHE_RELAYER_URL"`

	PlayTimeout  time.Duration `env:"PLAY_TIMEOUT" envDefault:"15s"`
	FetchTimeout time.Duration `env:"FETCH_TIMEOUT" envDefault:"10s"`
	RollPacing   time.Duration `env:"ROLL_PACING" envDefault:"2s"`
	HistoryLimit int           `env:"HISTORY_LIMIT" envDefault:"5"`
}

func LoadClient() (ClientConfig, error) {
	var cfg ClientConfig
	err := env.Parse(&cfg)
	return cfg, err
}
