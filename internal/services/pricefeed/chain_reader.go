package pricefeed

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hxuan190/grant-engine/internal/adapters/evmrpc"
	"github.com/hxuan190/grant-engine/internal/catalog"
)

// ChainReader reads aggregator feeds over EVM JSON-RPC. latestRoundData()
// returns (roundId, answer, startedAt, updatedAt, answeredInRound); only the
// answer and updatedAt words are used.
type ChainReader struct {
	client *evmrpc.Client
}

func NewChainReader(client *evmrpc.Client) *ChainReader {
	return &ChainReader{client: client}
}

func (r *ChainReader) LatestRound(ctx context.Context, feed catalog.Feed) (float64, time.Time, error) {
	result, err := r.client.Call(ctx, feed.RPCURL, feed.Address, evmrpc.SelectorLatestRoundData)
	if err != nil {
		return 0, time.Time{}, err
	}

	answer, negative, err := evmrpc.SignedWord(result, 1)
	if err != nil {
		return 0, time.Time{}, err
	}
	if negative {
		return 0, time.Time{}, fmt.Errorf("feed %s reported a negative answer", feed.Address)
	}
	if !answer.IsUint64() {
		return 0, time.Time{}, fmt.Errorf("feed %s answer out of range", feed.Address)
	}

	updatedWord, err := evmrpc.Word(result, 3)
	if err != nil {
		return 0, time.Time{}, err
	}
	if !updatedWord.IsUint64() {
		return 0, time.Time{}, fmt.Errorf("feed %s updatedAt out of range", feed.Address)
	}

	price := float64(answer.Uint64()) / math.Pow10(feed.Decimals)
	updatedAt := time.Unix(int64(updatedWord.Uint64()), 0)
	return price, updatedAt, nil
}
