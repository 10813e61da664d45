package wallet

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/rs/zerolog/log"
)

// Caller is the JSON-RPC surface of an external wallet. *rpc.Client from
// go-ethereum satisfies it.
type Caller interface {
	CallContext(ctx context.Context, result any, method string, args ...any) error
	Close()
}

// Provider wraps an optional wallet. A Provider without a Caller behaves as
// "no wallet installed".
type Provider struct {
	rpc        Caller
	descriptor ChainDescriptor
}

func New(rpc Caller, descriptor ChainDescriptor) *Provider {
	return &Provider{rpc: rpc, descriptor: descriptor}
}

// Dial connects to a wallet JSON-RPC endpoint (http, ws or ipc). An empty
// URL yields a Provider with no wallet capability.
func Dial(ctx context.Context, rawURL string, descriptor ChainDescriptor) (*Provider, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return New(nil, descriptor), nil
	}
	client, err := gethrpc.DialContext(ctx, rawURL)
	if err != nil {
		return nil, fmt.Errorf("dial wallet %q: %w", rawURL, err)
	}
	return New(client, descriptor), nil
}

func (p *Provider) Available() bool {
	return p != nil && p.rpc != nil
}

// AuthorizedAccount returns the first already-authorized account, lowercased,
// or "" when there is none. It never prompts and never fails.
func (p *Provider) AuthorizedAccount(ctx context.Context) string {
	if !p.Available() {
		return ""
	}
	var accounts []string
	if err := p.rpc.CallContext(ctx, &accounts, "eth_accounts"); err != nil {
		log.Warn().Err(err).Msg("wallet account lookup failed")
		return ""
	}
	addr, err := firstAccount(accounts)
	if err != nil {
		log.Warn().Err(err).Msg("wallet returned unusable account")
		return ""
	}
	return addr
}

// RequestAuthorization prompts the user through the wallet.
func (p *Provider) RequestAuthorization(ctx context.Context) (string, error) {
	if !p.Available() {
		return "", ErrWalletUnavailable
	}
	var accounts []string
	if err := p.rpc.CallContext(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return "", classify(err)
	}
	addr, err := firstAccount(accounts)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrWalletError, err)
	}
	return addr, nil
}

// EnsureChain asks the wallet to switch to chainID. When the wallet does not
// know the chain it is added with the configured descriptor and the switch
// is retried once.
func (p *Provider) EnsureChain(ctx context.Context, chainID uint64) error {
	if !p.Available() {
		return ErrWalletUnavailable
	}
	params := switchChainParams{ChainID: ChainIDHex(chainID)}
	err := p.rpc.CallContext(ctx, nil, "wallet_switchEthereumChain", params)
	if err == nil {
		return nil
	}
	if code, ok := errorCode(err); !ok || code != codeUnrecognizedChain {
		return classify(err)
	}

	desc := p.descriptor
	desc.ChainID = params.ChainID
	log.Info().Str("chain_id", desc.ChainID).Str("chain_name", desc.ChainName).Msg("wallet does not know chain, adding it")
	if err := p.rpc.CallContext(ctx, nil, "wallet_addEthereumChain", desc); err != nil {
		return fmt.Errorf("add chain %s: %w", desc.ChainID, classify(err))
	}
	if err := p.rpc.CallContext(ctx, nil, "wallet_switchEthereumChain", params); err != nil {
		return fmt.Errorf("switch after add: %w", classify(err))
	}
	return nil
}

// ChainID reports the wallet's active chain. It is the network handle the
// encryption session binds to.
func (p *Provider) ChainID(ctx context.Context) (uint64, error) {
	if !p.Available() {
		return 0, ErrWalletUnavailable
	}
	var id hexutil.Uint64
	if err := p.rpc.CallContext(ctx, &id, "eth_chainId"); err != nil {
		return 0, classify(err)
	}
	return uint64(id), nil
}

func (p *Provider) Close() {
	if p.Available() {
		p.rpc.Close()
	}
}

func firstAccount(accounts []string) (string, error) {
	if len(accounts) == 0 {
		return "", errors.New("no accounts")
	}
	addr := strings.ToLower(strings.TrimSpace(accounts[0]))
	if !common.IsHexAddress(addr) || !strings.HasPrefix(addr, "0x") {
		return "", fmt.Errorf("invalid account %q", accounts[0])
	}
	return addr, nil
}

func errorCode(err error) (int, bool) {
	var rpcErr gethrpc.Error
	if errors.As(err, &rpcErr) {
		return rpcErr.ErrorCode(), true
	}
	return 0, false
}

func classify(err error) error {
	if code, ok := errorCode(err); ok && code == codeUserRejected {
		return fmt.Errorf("%w: %v", ErrUserRejected, err)
	}
	return fmt.Errorf("%w: %v", ErrWalletError, err)
}
