// Package catalog holds the static chain, asset and price-feed tables the
// engine plans against. Ordering is significant: the rebalancer's
// "first other asset" rule and the UI's card layout both follow catalog order,
// so the tables are kept as ordered slices with derived lookup maps.
package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Asset describes one supported grant asset.
type Asset struct {
	Symbol        string  `json:"symbol" toml:"symbol"`
	Label         string  `json:"label" toml:"label"`
	FeedDecimals  int     `json:"feedDecimals" toml:"feed_decimals"`
	TokenDecimals int     `json:"tokenDecimals" toml:"token_decimals"`
	FallbackPrice float64 `json:"fallbackPrice" toml:"fallback_price"`
}

// Chain describes one supported destination chain.
type Chain struct {
	Selector     string `json:"selector" toml:"selector"`
	Name         string `json:"name" toml:"name"`
	Router       string `json:"router" toml:"router"`
	NativeSymbol string `json:"nativeSymbol" toml:"native_symbol"`
	ExplorerURL  string `json:"explorerUrl" toml:"explorer_url"`
	Receiver     string `json:"receiver" toml:"receiver"`
	RPCURL       string `json:"-" toml:"rpc_url"`
	USDCAddress  string `json:"-" toml:"usdc_address"`
}

// Feed is the on-chain aggregator a symbol's live price is read from.
type Feed struct {
	Symbol   string `toml:"symbol"`
	Address  string `toml:"address"`
	Decimals int    `toml:"decimals"`
	RPCURL   string `toml:"rpc_url"`
}

// Catalog bundles the tables with their lookup maps. Build one with Default
// or Load; the maps are always derived from the slices.
type Catalog struct {
	SourceChain  string
	Assets       []Asset
	Chains       []Chain
	Feeds        []Feed
	DefaultSplit map[string]float64

	assetBySymbol map[string]Asset
	chainBySel    map[string]Chain
	feedBySymbol  map[string]Feed
}

const defaultFeedRPC = "https://testnet-rpc.monad.xyz"

// Default returns the built-in catalog: five assets priced by Monad testnet
// feeds, five CCIP testnet destination chains.
func Default() *Catalog {
	c := &Catalog{
		SourceChain: "Monad",
		Assets: []Asset{
			{Symbol: "USDC", Label: "USD Coin", FeedDecimals: 8, TokenDecimals: 6, FallbackPrice: 1},
			{Symbol: "USDT", Label: "Tether", FeedDecimals: 8, TokenDecimals: 6, FallbackPrice: 1},
			{Symbol: "ETH", Label: "Ether", FeedDecimals: 8, TokenDecimals: 18, FallbackPrice: 3200},
			{Symbol: "BTC", Label: "Bitcoin", FeedDecimals: 8, TokenDecimals: 8, FallbackPrice: 60000},
			{Symbol: "LINK", Label: "Chainlink", FeedDecimals: 8, TokenDecimals: 18, FallbackPrice: 17},
		},
		Chains: []Chain{
			{
				Selector:     "arbitrum-sepolia",
				Name:         "Arbitrum Sepolia",
				Router:       "0x2a9C5afB0d0e4BAb2BCdaE109EC4b0c4Be15a165",
				NativeSymbol: "ETH",
				ExplorerURL:  "https://sepolia.arbiscan.io",
				Receiver:     "0x0000000000000000000000000000000000000001",
				RPCURL:       "https://arbitrum-sepolia.drpc.org",
				USDCAddress:  "0x75faf114eafb1BDbe2F0316DF893fd58CE46AA4d",
			},
			{
				Selector:     "avalanche-fuji",
				Name:         "Avalanche Fuji",
				Router:       "0xF694E193200268f9a4868e4Aa017A0118C9a8177",
				NativeSymbol: "AVAX",
				ExplorerURL:  "https://testnet.snowtrace.io",
				Receiver:     "0x0000000000000000000000000000000000000002",
				RPCURL:       "https://api.avax-test.network/ext/bc/C/rpc",
				USDCAddress:  "0x5425890298aed601595a70AB815c96711a31Bc65",
			},
			{
				Selector:     "base-sepolia",
				Name:         "Base Sepolia",
				Router:       "0xD3b06cEbF099CE7DA4AcCf578aaebFDBd6e88a93",
				NativeSymbol: "ETH",
				ExplorerURL:  "https://sepolia.basescan.org",
				Receiver:     "0x0000000000000000000000000000000000000003",
				RPCURL:       "https://sepolia.base.org",
				USDCAddress:  "0x036CbD53842c5426634e7929541eC2318f3dCF7e",
			},
			{
				Selector:     "ethereum-sepolia",
				Name:         "Ethereum Sepolia",
				Router:       "0x0BF3dE8c5D3e8A2B34D2BEeB17ABfCeBaf363A59",
				NativeSymbol: "ETH",
				ExplorerURL:  "https://sepolia.etherscan.io",
				Receiver:     "0x0000000000000000000000000000000000000005",
				RPCURL:       "https://api.zan.top/eth-sepolia",
				USDCAddress:  "0x1c7D4B196Cb0C7B01d743Fbc6116a902379C7238",
			},
			{
				Selector:     "op-sepolia",
				Name:         "OP Sepolia",
				Router:       "0x114A20A10b43D4115e5aeef7345a1A71d2a60C57",
				NativeSymbol: "ETH",
				ExplorerURL:  "https://sepolia-optimism.etherscan.io",
				Receiver:     "0x0000000000000000000000000000000000000007",
				RPCURL:       "https://sepolia.optimism.io",
				USDCAddress:  "0x5fd84259d66Cd46123540766Be93DFE6D43130D7",
			},
		},
		Feeds: []Feed{
			{Symbol: "BTC", Address: "0x2Cd9D7E85494F68F5aF08EF96d6FD5e8F71B4d31", Decimals: 8, RPCURL: defaultFeedRPC},
			{Symbol: "ETH", Address: "0x0c76859E85727683Eeba0C70Bc2e0F5781337818", Decimals: 8, RPCURL: defaultFeedRPC},
			{Symbol: "LINK", Address: "0x4682035965Cd2B88759193ee2660d8A0766e1391", Decimals: 8, RPCURL: defaultFeedRPC},
			{Symbol: "USDC", Address: "0x70BB0758a38ae43418ffcEd9A25273dd4e804D15", Decimals: 8, RPCURL: defaultFeedRPC},
			{Symbol: "USDT", Address: "0x14eE6bE30A91989851Dc23203E41C804D4D71441", Decimals: 8, RPCURL: defaultFeedRPC},
		},
		DefaultSplit: map[string]float64{
			"BTC": 25, "ETH": 25, "USDC": 20, "LINK": 15, "USDT": 15,
		},
	}
	c.index()
	return c
}

// overrideFile is the TOML shape accepted by Load. Sections that are present
// replace the corresponding built-in table wholesale; absent sections keep
// the defaults.
type overrideFile struct {
	SourceChain  string             `toml:"source_chain"`
	Assets       []Asset            `toml:"assets"`
	Chains       []Chain            `toml:"chains"`
	Feeds        []Feed             `toml:"feeds"`
	DefaultSplit map[string]float64 `toml:"default_split"`
}

// Load returns the default catalog with any overrides from the TOML file at
// path applied. An empty path returns the defaults unchanged.
func Load(path string) (*Catalog, error) {
	c := Default()
	if path == "" {
		return c, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog file: %w", err)
	}
	var ov overrideFile
	if err := toml.Unmarshal(raw, &ov); err != nil {
		return nil, fmt.Errorf("parse catalog file: %w", err)
	}
	if ov.SourceChain != "" {
		c.SourceChain = ov.SourceChain
	}
	if len(ov.Assets) > 0 {
		c.Assets = ov.Assets
	}
	if len(ov.Chains) > 0 {
		c.Chains = ov.Chains
	}
	if len(ov.Feeds) > 0 {
		c.Feeds = ov.Feeds
	}
	if len(ov.DefaultSplit) > 0 {
		c.DefaultSplit = ov.DefaultSplit
	}
	c.index()
	return c, c.validate()
}

func (c *Catalog) index() {
	c.assetBySymbol = make(map[string]Asset, len(c.Assets))
	for _, a := range c.Assets {
		c.assetBySymbol[a.Symbol] = a
	}
	c.chainBySel = make(map[string]Chain, len(c.Chains))
	for _, ch := range c.Chains {
		c.chainBySel[ch.Selector] = ch
	}
	c.feedBySymbol = make(map[string]Feed, len(c.Feeds))
	for _, f := range c.Feeds {
		c.feedBySymbol[f.Symbol] = f
	}
}

func (c *Catalog) validate() error {
	if len(c.Assets) == 0 {
		return fmt.Errorf("catalog has no assets")
	}
	if len(c.Chains) == 0 {
		return fmt.Errorf("catalog has no chains")
	}
	for _, a := range c.Assets {
		if a.Symbol == "" {
			return fmt.Errorf("catalog asset with empty symbol")
		}
		if a.FallbackPrice < 0 {
			return fmt.Errorf("asset %s: negative fallback price", a.Symbol)
		}
	}
	for _, ch := range c.Chains {
		if ch.Selector == "" {
			return fmt.Errorf("catalog chain with empty selector")
		}
	}
	return nil
}

// Symbols returns asset symbols in catalog order.
func (c *Catalog) Symbols() []string {
	out := make([]string, len(c.Assets))
	for i, a := range c.Assets {
		out[i] = a.Symbol
	}
	return out
}

// Asset looks an asset up by symbol.
func (c *Catalog) Asset(symbol string) (Asset, bool) {
	a, ok := c.assetBySymbol[symbol]
	return a, ok
}

// Chain looks a chain up by selector.
func (c *Catalog) Chain(selector string) (Chain, bool) {
	ch, ok := c.chainBySel[selector]
	return ch, ok
}

// Feed looks up a symbol's price feed. Missing feeds are a valid state and
// resolve to the fallback price upstream.
func (c *Catalog) Feed(symbol string) (Feed, bool) {
	f, ok := c.feedBySymbol[symbol]
	return f, ok
}

// FallbackPrice returns the static price for symbol, 0 for unknown symbols.
func (c *Catalog) FallbackPrice(symbol string) float64 {
	return c.assetBySymbol[symbol].FallbackPrice
}

// ChainName returns the display name for a selector, or the selector itself
// when the chain is not in the catalog.
func (c *Catalog) ChainName(selector string) string {
	if ch, ok := c.chainBySel[selector]; ok {
		return ch.Name
	}
	return selector
}
