// Package wallet reports a wallet's balances across the supported chains:
// the native coin via eth_getBalance and the chain's USDC token via
// balanceOf. Probes are concurrent and per-chain best-effort — an
// unreachable chain yields an entry with Ok=false instead of failing the set.
package wallet

import (
	"context"
	"errors"
	"math"
	"math/big"
	"regexp"
	"sync"
	"time"

	"github.com/holiman/uint256"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/grant-engine/internal/adapters/evmrpc"
	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/config"
	"github.com/hxuan190/grant-engine/internal/services"
)

const WALLET_SERVICE = "wallet-service"

const (
	weiDecimals  = 18
	usdcDecimals = 6
)

var (
	ErrInvalidAddress = errors.New("invalid wallet address")

	addressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)
)

// BalanceReader is the subset of the RPC client the service needs.
type BalanceReader interface {
	NativeBalance(ctx context.Context, rpcURL, address string) (*uint256.Int, error)
	ERC20Balance(ctx context.Context, rpcURL, token, address string) (*uint256.Int, error)
}

// ChainBalance is one chain's view of a wallet.
type ChainBalance struct {
	Selector     string  `json:"selector"`
	Name         string  `json:"name"`
	NativeSymbol string  `json:"nativeSymbol"`
	Native       float64 `json:"native"`
	Usdc         float64 `json:"usdc"`
	Ok           bool    `json:"ok"`
	Error        string  `json:"error,omitempty"`
}

type Service struct {
	container.BaseDIInstance

	logger *services.ServiceLogger
	cat    *catalog.Catalog
	reader BalanceReader
}

func (svc *Service) ID() string {
	return WALLET_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.cat = c.GetConfig(config.CATALOG_CONFIG_KEY).(*config.CatalogConfig).Catalog
	if svc.reader == nil {
		rpcConf := c.GetConfig(config.RPC_CONFIG_KEY).(*config.RPCConfig)
		svc.reader = evmrpc.New(time.Duration(rpcConf.TimeoutSeconds) * time.Second)
	}
	return nil
}

// SetReader swaps the balance reader. Call before use; used by tests.
func (svc *Service) SetReader(r BalanceReader) {
	svc.reader = r
}

// Balances fetches the wallet's holdings on every catalog chain.
func (svc *Service) Balances(ctx context.Context, address string) ([]ChainBalance, error) {
	if !addressPattern.MatchString(address) {
		return nil, ErrInvalidAddress
	}

	out := make([]ChainBalance, len(svc.cat.Chains))
	var wg sync.WaitGroup
	for i, chain := range svc.cat.Chains {
		wg.Add(1)
		go func(i int, chain catalog.Chain) {
			defer wg.Done()
			out[i] = svc.chainBalance(ctx, chain, address)
		}(i, chain)
	}
	wg.Wait()
	return out, nil
}

func (svc *Service) chainBalance(ctx context.Context, chain catalog.Chain, address string) ChainBalance {
	entry := ChainBalance{
		Selector:     chain.Selector,
		Name:         chain.Name,
		NativeSymbol: chain.NativeSymbol,
	}

	wei, err := svc.reader.NativeBalance(ctx, chain.RPCURL, address)
	if err != nil {
		svc.logger.Warn().Err(err).Str("selector", chain.Selector).Msg("native balance read failed")
		entry.Error = "unreachable"
		return entry
	}
	entry.Native = toDecimal(wei, weiDecimals)

	if chain.USDCAddress != "" {
		units, err := svc.reader.ERC20Balance(ctx, chain.RPCURL, chain.USDCAddress, address)
		if err != nil {
			svc.logger.Warn().Err(err).Str("selector", chain.Selector).Msg("usdc balance read failed")
			entry.Error = "token-unreachable"
			return entry
		}
		entry.Usdc = toDecimal(units, usdcDecimals)
	}
	entry.Ok = true
	return entry
}

// toDecimal converts base units to a display float. Balances beyond uint64
// precision go through big.Float to avoid truncation.
func toDecimal(v *uint256.Int, decimals int) float64 {
	if v.IsUint64() {
		return float64(v.Uint64()) / math.Pow10(decimals)
	}
	f, _ := new(big.Float).SetInt(v.ToBig()).Float64()
	return f / math.Pow10(decimals)
}
