package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultOrdering(t *testing.T) {
	c := Default()

	wantAssets := []string{"USDC", "USDT", "ETH", "BTC", "LINK"}
	got := c.Symbols()
	if len(got) != len(wantAssets) {
		t.Fatalf("Symbols() = %v, want %v", got, wantAssets)
	}
	for i, s := range wantAssets {
		if got[i] != s {
			t.Errorf("Symbols()[%d] = %s, want %s", i, got[i], s)
		}
	}

	wantChains := []string{"arbitrum-sepolia", "avalanche-fuji", "base-sepolia", "ethereum-sepolia", "op-sepolia"}
	if len(c.Chains) != len(wantChains) {
		t.Fatalf("got %d chains, want %d", len(c.Chains), len(wantChains))
	}
	for i, sel := range wantChains {
		if c.Chains[i].Selector != sel {
			t.Errorf("Chains[%d].Selector = %s, want %s", i, c.Chains[i].Selector, sel)
		}
	}
}

func TestDefaultSplitSumsToHundred(t *testing.T) {
	c := Default()
	var sum float64
	for _, v := range c.DefaultSplit {
		sum += v
	}
	if sum != 100 {
		t.Errorf("default split sums to %v, want 100", sum)
	}
	for symbol := range c.DefaultSplit {
		if _, ok := c.Asset(symbol); !ok {
			t.Errorf("default split names unknown asset %s", symbol)
		}
	}
}

func TestDefaultLookups(t *testing.T) {
	c := Default()

	if a, ok := c.Asset("BTC"); !ok || a.FallbackPrice != 60000 {
		t.Errorf("Asset(BTC) = %+v, %v", a, ok)
	}
	if _, ok := c.Asset("DOGE"); ok {
		t.Error("Asset(DOGE) should not exist")
	}
	if ch, ok := c.Chain("base-sepolia"); !ok || ch.Name != "Base Sepolia" {
		t.Errorf("Chain(base-sepolia) = %+v, %v", ch, ok)
	}
	if c.ChainName("op-sepolia") != "OP Sepolia" {
		t.Errorf("ChainName(op-sepolia) = %s", c.ChainName("op-sepolia"))
	}
	if c.ChainName("unknown-chain") != "unknown-chain" {
		t.Error("unknown selector should echo back")
	}
	if c.FallbackPrice("ETH") != 3200 {
		t.Errorf("FallbackPrice(ETH) = %v", c.FallbackPrice("ETH"))
	}
	if c.FallbackPrice("DOGE") != 0 {
		t.Errorf("FallbackPrice(DOGE) = %v, want 0", c.FallbackPrice("DOGE"))
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	c, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\"): %v", err)
	}
	if len(c.Assets) != 5 || c.SourceChain != "Monad" {
		t.Errorf("Load(\"\") changed the defaults: %+v", c)
	}
}

func TestLoadOverridesSections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	body := `
source_chain = "Monad Devnet"

[default_split]
BTC = 50
ETH = 50
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.SourceChain != "Monad Devnet" {
		t.Errorf("SourceChain = %s", c.SourceChain)
	}
	if len(c.DefaultSplit) != 2 || c.DefaultSplit["BTC"] != 50 {
		t.Errorf("DefaultSplit = %v, want wholesale replacement", c.DefaultSplit)
	}
	// untouched sections keep the defaults
	if len(c.Assets) != 5 || len(c.Chains) != 5 {
		t.Errorf("assets/chains should be untouched: %d/%d", len(c.Assets), len(c.Chains))
	}
}

func TestLoadReindexesAfterOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	body := `
[[assets]]
symbol = "USDC"
label = "USD Coin"
feed_decimals = 8
token_decimals = 6
fallback_price = 1.0
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if _, ok := c.Asset("USDC"); !ok {
		t.Error("overridden asset not indexed")
	}
	if _, ok := c.Asset("BTC"); ok {
		t.Error("replaced asset table should drop BTC")
	}
}

func TestLoadRejectsBadInput(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("missing file should fail")
	}

	path := filepath.Join(t.TempDir(), "bad.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed toml should fail")
	}

	empty := filepath.Join(t.TempDir(), "empty_symbol.toml")
	body := `
[[assets]]
symbol = ""
fallback_price = 1.0
`
	if err := os.WriteFile(empty, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(empty); err == nil {
		t.Error("empty asset symbol should fail validation")
	}
}
