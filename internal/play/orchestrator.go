package play

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync"
	"time"

	"fhe-dice/internal/backend"
	"fhe-dice/internal/config"
	"fhe-dice/internal/fhe"
	"fhe-dice/internal/ids"
	"fhe-dice/internal/stream"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

// Identity is the wallet capability. ChainID doubles as the network handle
// the encryption session binds to.
type Identity interface {
	Available() bool
	AuthorizedAccount(ctx context.Context) string
	RequestAuthorization(ctx context.Context) (string, error)
	EnsureChain(ctx context.Context, chainID uint64) error
	ChainID(ctx context.Context) (uint64, error)
}

// Encryptor is the encryption session. Ready must be a cheap flag check.
type Encryptor interface {
	Initialize(ctx context.Context, network fhe.Network, environmentID string) error
	EncryptInteger(ctx context.Context, v uint32) ([]byte, error)
	Ready() bool
}

// Backend submits rolls and reads the shared game dashboards.
type Backend interface {
	Play(ctx context.Context, req backend.PlayRequest) (*backend.GameResult, error)
	Stats(ctx context.Context) (*backend.Stats, error)
	History(ctx context.Context, limit int) ([]backend.HistoryEntry, error)
}

// Options tunes one orchestrator. Zero values fall back to the defaults
// applied in New.
type Options struct {
	EnvironmentID string
	TargetChainID uint64
	Pacing        time.Duration
	HistoryLimit  int
	// RollDie returns an encryption input in [1,6]. Defaults to math/rand.
	RollDie func() int
}

// OptionsFromConfig maps client configuration onto Options.
func OptionsFromConfig(cfg config.ClientConfig) Options {
	return Options{
		EnvironmentID: cfg.EnvironmentID,
		TargetChainID: cfg.TargetChainID,
		Pacing:        cfg.RollPacing,
		HistoryLimit:  cfg.HistoryLimit,
	}
}

// Orchestrator owns one play session: the wallet account, the encryption
// session, cached stats and history, and the roll state machine.
type Orchestrator struct {
	identity Identity
	crypto   Encryptor
	backend  Backend
	opts     Options
	events   *stream.Buffer

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	// pubMu covers Snapshot plus Append so buffered events stay in state order.
	pubMu sync.Mutex

	mu            sync.Mutex
	state         State
	account       string
	connecting    bool
	cryptoAttempt bool
	stats         *backend.Stats
	history       []backend.HistoryEntry
	notice        string
	closed        bool
}

// New builds an idle orchestrator. Call Start before use and Close when done.
func New(identity Identity, crypto Encryptor, be Backend, opts Options) *Orchestrator {
	if opts.Pacing < 0 {
		opts.Pacing = 0
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = backend.DefaultHistoryLimit
	}
	if opts.RollDie == nil {
		opts.RollDie = func() int { return rand.IntN(6) + 1 }
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Orchestrator{
		identity: identity,
		crypto:   crypto,
		backend:  be,
		opts:     opts,
		events:   stream.NewBuffer(100),
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Phase: PhaseIdle},
		history:  []backend.HistoryEntry{},
	}
}

// Start checks for an already-authorized account, brings up encryption when
// a wallet exists and kicks off a background refresh. Failures only narrow
// what is available; they are logged and never returned.
func (o *Orchestrator) Start(ctx context.Context) {
	if account := o.identity.AuthorizedAccount(ctx); account != "" {
		o.mu.Lock()
		o.account = account
		o.mu.Unlock()
		log.Info().Str("player", account).Msg("wallet already authorized")
	}
	if o.identity.Available() {
		o.initEncryption(ctx)
	}
	o.publish("")
	o.refreshAsync()
}

// Close stops background refreshes and ends all subscriptions.
func (o *Orchestrator) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	o.mu.Unlock()
	o.cancel()
	o.wg.Wait()
	o.events.Close()
}

// Connect requests wallet authorization and selects the target chain. A
// chain switch failure is tolerated. The first successful connection also
// brings up encryption if it was never attempted.
func (o *Orchestrator) Connect(ctx context.Context) error {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return ErrClosed
	}
	if o.connecting {
		o.mu.Unlock()
		return ErrConnectInFlight
	}
	o.connecting = true
	if o.state.Phase != PhaseRolling {
		o.state = State{Phase: PhaseConnecting}
	}
	o.mu.Unlock()
	o.publish("")

	defer func() {
		o.mu.Lock()
		o.connecting = false
		if o.state.Phase == PhaseConnecting {
			o.state = State{Phase: PhaseIdle}
		}
		o.mu.Unlock()
		o.publish("")
	}()

	metricConnectTotal.Add(1)
	account, err := o.identity.RequestAuthorization(ctx)
	if err != nil {
		metricConnectErrors.Add(1)
		failure := walletFailure(err)
		log.Warn().Err(err).Str("kind", string(failure.Kind)).Msg("wallet connection failed")
		o.setNotice(failure.Message)
		return err
	}

	o.mu.Lock()
	o.account = account
	o.mu.Unlock()
	log.Info().Str("player", account).Msg("wallet connected")

	if err := o.identity.EnsureChain(ctx, o.opts.TargetChainID); err != nil {
		log.Warn().Err(err).Uint64("chain_id", o.opts.TargetChainID).Msg("chain switch failed, continuing")
	}
	o.initEncryption(ctx)
	return nil
}

// Roll plays one game and returns the terminal state. It is a no-op that
// returns ErrRollInFlight while another roll is running. Once started the
// roll runs to completion regardless of ctx cancellation; game failures are
// reported in the returned state, not as an error.
func (o *Orchestrator) Roll(ctx context.Context) (State, error) {
	ctx = context.WithoutCancel(ctx)

	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return State{}, ErrClosed
	}
	if o.state.Phase == PhaseRolling {
		current := o.state.clone()
		o.mu.Unlock()
		metricRollsIgnored.Add(1)
		return current, ErrRollInFlight
	}
	rollID := ids.NewRollID()
	started := time.Now()
	o.state = State{Phase: PhaseRolling, RollID: rollID}
	account := o.account
	o.mu.Unlock()
	metricRollsStarted.Add(1)
	o.publish(rollID)

	logger := log.With().Str("roll_id", rollID).Logger()
	req := backend.PlayRequest{
		NumDice:       backend.NumDice,
		GameMode:      backend.ModeStandard,
		EnvironmentID: o.opts.EnvironmentID,
	}
	if account != "" {
		player := account
		req.PlayerAddress = &player
	}
	if account != "" && o.crypto.Ready() {
		payload, err := o.encryptDice(ctx)
		if err != nil {
			metricEncryptionDowngrades.Add(1)
			logger.Warn().Err(err).Msg("encryption failed, playing standard mode")
		} else {
			req.GameMode = backend.ModeEncrypted
			req.EncryptedData = payload
		}
	}
	if req.GameMode == backend.ModeEncrypted {
		metricEncryptedSubmissions.Add(1)
	} else {
		metricStandardSubmissions.Add(1)
	}
	o.mu.Lock()
	o.state.Mode = req.GameMode
	o.mu.Unlock()

	logger.Info().Str("mode", string(req.GameMode)).Str("player", account).Msg("submitting roll")
	result, err := o.backend.Play(ctx, req)
	if err != nil {
		failure := playFailure(err)
		metricRollsFailed.Add(1)
		logger.Warn().Err(err).Str("kind", string(failure.Kind)).Msg("roll failed")
		final := o.finish(State{Phase: PhaseFailed, RollID: rollID, Mode: req.GameMode, Failure: &failure})
		o.refreshAsync()
		return final, nil
	}

	if wait := o.opts.Pacing - time.Since(started); wait > 0 {
		time.Sleep(wait)
	}
	metricRollsResolved.Add(1)
	logger.Info().
		Ints("dice", result.DiceResults).
		Int("total_score", result.TotalScore).
		Bool("nft", result.NFTGenerated).
		Msg("roll resolved")
	final := o.finish(State{
		Phase:   PhaseResolved,
		RollID:  rollID,
		Mode:    req.GameMode,
		Result:  result,
		ShowNFT: result.NFTGenerated,
	})
	o.refreshAsync()
	return final, nil
}

func (o *Orchestrator) finish(st State) State {
	o.mu.Lock()
	o.state = st
	out := st.clone()
	o.mu.Unlock()
	o.publish(st.RollID)
	return out
}

// encryptDice encrypts two client-side die values. They are inputs to the
// encrypted submission only; the server decides the displayed outcome.
func (o *Orchestrator) encryptDice(ctx context.Context) (*backend.EncryptedDice, error) {
	d1, err := o.crypto.EncryptInteger(ctx, uint32(o.opts.RollDie()))
	if err != nil {
		return nil, err
	}
	d2, err := o.crypto.EncryptInteger(ctx, uint32(o.opts.RollDie()))
	if err != nil {
		return nil, err
	}
	return &backend.EncryptedDice{
		Dice1: backend.Ciphertext(d1),
		Dice2: backend.Ciphertext(d2),
		Mode:  backend.ModeEncrypted,
	}, nil
}

// initEncryption runs at most once per orchestrator. A failure leaves
// encryption unavailable for the rest of the session.
func (o *Orchestrator) initEncryption(ctx context.Context) {
	o.mu.Lock()
	if o.cryptoAttempt {
		o.mu.Unlock()
		return
	}
	o.cryptoAttempt = true
	o.mu.Unlock()

	err := o.crypto.Initialize(ctx, o.identity, o.opts.EnvironmentID)
	if err == nil || errors.Is(err, fhe.ErrAlreadyInitialized) {
		o.publish("")
		return
	}
	log.Warn().Err(err).Str("kind", string(KindCryptoInitFailed)).Msg("encryption unavailable, standard mode only")
	o.setNotice(MsgCryptoInitFailed)
}

// Refresh reloads stats and history concurrently. Each cache is replaced
// only on success; a failure keeps the previous value and raises a notice.
func (o *Orchestrator) Refresh(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		stats, err := o.backend.Stats(ctx)
		if err != nil {
			metricRefreshFailures.Add(1)
			log.Warn().Err(err).Msg("stats refresh failed")
			o.setNotice(MsgStatsFailed)
			return err
		}
		o.mu.Lock()
		o.stats = stats
		o.mu.Unlock()
		return nil
	})
	g.Go(func() error {
		history, err := o.backend.History(ctx, o.opts.HistoryLimit)
		if err != nil {
			metricRefreshFailures.Add(1)
			log.Warn().Err(err).Msg("history refresh failed")
			o.setNotice(MsgHistoryFailed)
			return err
		}
		o.mu.Lock()
		o.history = history
		o.mu.Unlock()
		return nil
	})
	err := g.Wait()
	o.publish("")
	return err
}

// refreshAsync refreshes without blocking the caller. Concurrent refreshes
// are last-write-wins on the caches.
func (o *Orchestrator) refreshAsync() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.wg.Add(1)
	o.mu.Unlock()
	go func() {
		defer o.wg.Done()
		_ = o.Refresh(o.ctx)
	}()
}

// State returns a copy of the current roll state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state.clone()
}

// Snapshot returns everything a presentation layer renders: state, account,
// encryption readiness, cached stats and history, and the pending notice.
func (o *Orchestrator) Snapshot() Snapshot {
	ready := o.crypto.Ready()
	available := o.identity.Available()
	o.mu.Lock()
	defer o.mu.Unlock()
	snap := Snapshot{
		State:           o.state.clone(),
		Account:         o.account,
		WalletAvailable: available,
		EncryptionReady: ready,
		History:         append([]backend.HistoryEntry{}, o.history...),
		Notice:          o.notice,
	}
	if o.stats != nil {
		stats := *o.stats
		snap.Stats = &stats
	}
	return snap
}

// Subscribe streams a snapshot event on every change. The returned cancel
// func must be called once the caller stops reading.
func (o *Orchestrator) Subscribe() (<-chan stream.Event, func()) {
	ch := o.events.Subscribe()
	return ch, func() { o.events.Unsubscribe(ch) }
}

// Replay returns snapshot events published after lastEventID. ok is false
// when the buffer no longer covers that id.
func (o *Orchestrator) Replay(lastEventID string) ([]stream.Event, bool) {
	return o.events.ReplayAfter(lastEventID)
}

// DismissNotice clears the pending notice.
func (o *Orchestrator) DismissNotice() {
	o.mu.Lock()
	o.notice = ""
	o.mu.Unlock()
	o.publish("")
}

// DismissNFT hides the NFT panel without touching the roll result.
func (o *Orchestrator) DismissNFT() {
	o.mu.Lock()
	o.state.ShowNFT = false
	rollID := o.state.RollID
	o.mu.Unlock()
	o.publish(rollID)
}

func (o *Orchestrator) setNotice(msg string) {
	o.mu.Lock()
	o.notice = msg
	o.mu.Unlock()
	o.publish("")
}

func (o *Orchestrator) publish(rollID string) {
	o.pubMu.Lock()
	defer o.pubMu.Unlock()
	o.events.Append("snapshot", rollID, o.Snapshot())
}
