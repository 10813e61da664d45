package main

import (
	"errors"
	"fmt"
	"time"

	"fhe-dice/internal/play"
	"fhe-dice/internal/render"

	"github.com/spf13/cobra"
)

var errRollFailed = errors.New("roll_failed")

func (a *app) rollCmd() *cobra.Command {
	var connect bool
	cmd := &cobra.Command{
		Use:   "roll",
		Short: "Roll two dice",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			if connect {
				if err := s.game.Connect(cmd.Context()); err != nil {
					render.WriteSnapshot(cmd.ErrOrStderr(), s.game.Snapshot())
				}
			}
			st, err := s.game.Roll(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				if err := a.printJSON(cmd.OutOrStdout(), st); err != nil {
					return err
				}
			} else {
				render.WriteState(cmd.OutOrStdout(), st)
			}
			if st.Phase == play.PhaseFailed {
				return errRollFailed
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&connect, "connect", false, "request wallet authorization before rolling")
	return cmd
}

func (a *app) connectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "connect",
		Short: "Authorize the wallet and switch it to the game network",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close()
			connectErr := s.game.Connect(cmd.Context())
			snap := s.game.Snapshot()
			if a.jsonOut {
				if err := a.printJSON(cmd.OutOrStdout(), snap); err != nil {
					return err
				}
			} else {
				render.WriteSnapshot(cmd.OutOrStdout(), snap)
			}
			return connectErr
		},
	}
}

func (a *app) statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show game totals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			be := a.backendClient()
			stats, err := be.Stats(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), stats)
			}
			render.WriteStats(cmd.OutOrStdout(), stats)
			return nil
		},
	}
}

func (a *app) historyCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the most recent games",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if limit <= 0 {
				limit = a.cfg.Client.HistoryLimit
			}
			games, err := a.backendClient().History(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), games)
			}
			return render.WriteHistory(cmd.OutOrStdout(), games, time.Local)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "number of games, defaults to HISTORY_LIMIT")
	return cmd
}

func (a *app) leaderboardCmd() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show top players",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			entries, err := a.backendClient().Leaderboard(cmd.Context(), limit)
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), entries)
			}
			return render.WriteLeaderboard(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 10, "number of players")
	return cmd
}

func (a *app) healthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the game server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			h, err := a.backendClient().Health(cmd.Context())
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), h)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", h.Service, h.Status)
			return nil
		},
	}
}

func (a *app) gameCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "game <id>",
		Short: "Show one game",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.backendClient().Game(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), g)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  Score: %d  Player: %s  At: %s\n",
				g.ID, render.DiceFaces(g.DiceResults), g.TotalScore, render.PlayerLabel(g.PlayerAddress), render.LocalTime(g.Timestamp, time.Local))
			return nil
		},
	}
}

func (a *app) playerCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "player <address>",
		Short: "Show a player's totals",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := a.backendClient().User(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if a.jsonOut {
				return a.printJSON(cmd.OutOrStdout(), u)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  games: %d  score: %d  nfts: %d\n", render.ShortAddress(u.WalletAddress), u.GamesPlayed, u.TotalScore, u.NFTsOwned)
			return nil
		},
	}
}
