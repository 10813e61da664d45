package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/config"
	"fhe-dice/internal/fhe"
	"fhe-dice/internal/logging"
	"fhe-dice/internal/play"
	"fhe-dice/internal/wallet"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

type app struct {
	cfg     config.AppConfig
	jsonOut bool
	envFile string
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "dice-client",
		Short:         "Roll dice against the game server, encrypted when a wallet is connected",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.load()
		},
	}
	root.PersistentFlags().BoolVar(&a.jsonOut, "json", false, "print raw JSON instead of text")
	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional dotenv file loaded before the environment is parsed")

	root.AddCommand(
		a.rollCmd(),
		a.connectCmd(),
		a.statsCmd(),
		a.historyCmd(),
		a.leaderboardCmd(),
		a.healthCmd(),
		a.gameCmd(),
		a.playerCmd(),
		a.serveCmd(),
	)
	return root
}

// load reads the optional dotenv file, then the environment. Variables
// already set in the environment win over the file.
func (a *app) load() error {
	if a.envFile != "" {
		if err := godotenv.Load(a.envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", a.envFile, err)
		}
	}
	cfg, err := config.LoadApp()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logging.Init(cfg.Log)
	a.cfg = cfg
	return nil
}

type session struct {
	wallet  *wallet.Provider
	backend *backend.Client
	game    *play.Orchestrator
}

// openSession wires the wallet, the encryption manager and the backend
// client into a started orchestrator.
func (a *app) openSession(ctx context.Context) (*session, error) {
	cc := a.cfg.Client
	provider, err := wallet.Dial(ctx, cc.WalletRPCURL, wallet.DescriptorFromConfig(cc))
	if err != nil {
		return nil, err
	}
	be := backend.NewClientFromConfig(cc)
	crypto := fhe.NewManager(fhe.NewEngineFromConfig(cc))
	game := play.New(provider, crypto, be, play.OptionsFromConfig(cc))
	game.Start(ctx)
	return &session{wallet: provider, backend: be, game: game}, nil
}

// backendClient serves the lookup commands, which need no wallet or
// orchestrator.
func (a *app) backendClient() *backend.Client {
	return backend.NewClientFromConfig(a.cfg.Client)
}

func (s *session) Close() {
	s.game.Close()
	s.wallet.Close()
}

func (a *app) printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
