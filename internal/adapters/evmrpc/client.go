// Package evmrpc is a minimal EVM JSON-RPC client covering the three calls
// the engine needs: eth_call for feed and router reads, eth_getBalance for
// wallet balances, and ERC-20 balanceOf. No receipt tracking, no signing.
package evmrpc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/holiman/uint256"
)

// Well-known 4-byte selectors.
const (
	SelectorLatestRoundData = "0xfeaf968c" // latestRoundData()
	SelectorTypeAndVersion  = "0x181f5a77" // typeAndVersion()
	SelectorBalanceOf       = "0x70a08231" // balanceOf(address)
)

type Client struct {
	http *http.Client
}

func New(timeout time.Duration) *Client {
	return &Client{http: &http.Client{Timeout: timeout}}
}

type rpcRequest struct {
	JSONRPC string        `json:"jsonrpc"`
	ID      int           `json:"id"`
	Method  string        `json:"method"`
	Params  []interface{} `json:"params"`
}

type rpcError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type rpcResponse struct {
	Result string    `json:"result"`
	Error  *rpcError `json:"error"`
}

type callParams struct {
	To   string `json:"to"`
	Data string `json:"data"`
}

func (c *Client) do(ctx context.Context, rpcURL, method string, params []interface{}) (string, error) {
	body, err := sonic.Marshal(rpcRequest{JSONRPC: "2.0", ID: 1, Method: method, Params: params})
	if err != nil {
		return "", fmt.Errorf("marshal rpc request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, rpcURL, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		return "", fmt.Errorf("rpc endpoint returned %d", res.StatusCode)
	}
	raw, err := io.ReadAll(io.LimitReader(res.Body, 1<<20))
	if err != nil {
		return "", err
	}
	var parsed rpcResponse
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode rpc response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("rpc error %d: %s", parsed.Error.Code, parsed.Error.Message)
	}
	if parsed.Result == "" {
		return "", fmt.Errorf("empty rpc result")
	}
	return parsed.Result, nil
}

// Call performs eth_call against a contract and returns the raw hex result.
func (c *Client) Call(ctx context.Context, rpcURL, to, data string) (string, error) {
	return c.do(ctx, rpcURL, "eth_call", []interface{}{callParams{To: to, Data: data}, "latest"})
}

// NativeBalance returns an address's balance in wei.
func (c *Client) NativeBalance(ctx context.Context, rpcURL, address string) (*uint256.Int, error) {
	result, err := c.do(ctx, rpcURL, "eth_getBalance", []interface{}{address, "latest"})
	if err != nil {
		return nil, err
	}
	// Quantity encoding: 0x-prefixed, no leading zeros, so FromHex applies.
	v, err := uint256.FromHex(result)
	if err != nil {
		return nil, fmt.Errorf("parse balance %q: %w", result, err)
	}
	return v, nil
}

// ERC20Balance returns an address's token balance in base units.
func (c *Client) ERC20Balance(ctx context.Context, rpcURL, token, address string) (*uint256.Int, error) {
	data := SelectorBalanceOf + PadAddress(address)
	result, err := c.Call(ctx, rpcURL, token, data)
	if err != nil {
		return nil, err
	}
	return Word(result, 0)
}

// PadAddress left-pads a 0x address to a 32-byte ABI argument (without 0x).
// Over-long input keeps its low-order 32 bytes, matching EVM address
// coercion, so a malformed catalog entry cannot make the padding negative.
func PadAddress(address string) string {
	hexPart := strings.ToLower(strings.TrimPrefix(address, "0x"))
	if len(hexPart) >= 64 {
		return hexPart[len(hexPart)-64:]
	}
	return strings.Repeat("0", 64-len(hexPart)) + hexPart
}
