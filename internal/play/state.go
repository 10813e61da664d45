package play

import "fhe-dice/internal/backend"

type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseConnecting Phase = "connecting"
	PhaseRolling    Phase = "rolling"
	PhaseResolved   Phase = "resolved"
	PhaseFailed     Phase = "failed"
)

// State is the roll state machine. Result is set only when Resolved and
// Failure only when Failed.
type State struct {
	Phase   Phase               `json:"phase"`
	RollID  string              `json:"roll_id,omitempty"`
	Mode    backend.Mode        `json:"mode,omitempty"`
	Result  *backend.GameResult `json:"result,omitempty"`
	Failure *Failure            `json:"failure,omitempty"`
	ShowNFT bool                `json:"show_nft"`
}

// Snapshot is everything a presentation layer renders.
type Snapshot struct {
	State           State                  `json:"state"`
	Account         string                 `json:"account,omitempty"`
	WalletAvailable bool                   `json:"wallet_available"`
	EncryptionReady bool                   `json:"encryption_ready"`
	Stats           *backend.Stats         `json:"stats,omitempty"`
	History         []backend.HistoryEntry `json:"history"`
	Notice          string                 `json:"notice,omitempty"`
}

func (s State) clone() State {
	if s.Result != nil {
		r := *s.Result
		r.DiceResults = append([]int(nil), s.Result.DiceResults...)
		s.Result = &r
	}
	if s.Failure != nil {
		f := *s.Failure
		s.Failure = &f
	}
	return s
}
