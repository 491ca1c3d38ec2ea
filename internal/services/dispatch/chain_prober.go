package dispatch

import (
	"context"

	"github.com/hxuan190/grant-engine/internal/adapters/evmrpc"
	"github.com/hxuan190/grant-engine/internal/catalog"
)

// ChainProber reads typeAndVersion() from a chain's router over JSON-RPC.
type ChainProber struct {
	client *evmrpc.Client
}

func NewChainProber(client *evmrpc.Client) *ChainProber {
	return &ChainProber{client: client}
}

func (p *ChainProber) TypeAndVersion(ctx context.Context, chain catalog.Chain) (string, error) {
	result, err := p.client.Call(ctx, chain.RPCURL, chain.Router, evmrpc.SelectorTypeAndVersion)
	if err != nil {
		return "", err
	}
	return evmrpc.DecodeString(result)
}
