package wallet

import (
	"strings"

	"fhe-dice/internal/config"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

type NativeCurrency struct {
	Name     string `json:"name"`
	Symbol   string `json:"symbol"`
	Decimals int    `json:"decimals"`
}

// ChainDescriptor is the wallet_addEthereumChain parameter.
type ChainDescriptor struct {
	ChainID           string         `json:"chainId"`
	ChainName         string         `json:"chainName"`
	NativeCurrency    NativeCurrency `json:"nativeCurrency"`
	RPCURLs           []string       `json:"rpcUrls"`
	BlockExplorerURLs []string       `json:"blockExplorerUrls"`
}

type switchChainParams struct {
	ChainID string `json:"chainId"`
}

func ChainIDHex(id uint64) string {
	return hexutil.EncodeUint64(id)
}

func DescriptorFromConfig(cfg config.ClientConfig) ChainDescriptor {
	d := ChainDescriptor{
		ChainID:        ChainIDHex(cfg.TargetChainID),
		ChainName:      strings.TrimSpace(cfg.ChainName),
		NativeCurrency: NativeCurrency{Name: "ETH", Symbol: "ETH", Decimals: 18},
	}
	if v := strings.TrimSpace(cfg.ChainRPCURL); v != "" {
		d.RPCURLs = []string{v}
	}
	if v := strings.TrimSpace(cfg.ChainExplorerURL); v != "" {
		d.BlockExplorerURLs = []string{v}
	}
	return d
}
