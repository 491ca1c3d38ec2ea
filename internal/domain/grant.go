package domain

// SplitTable maps asset symbol to its percentage of the grant budget.
// Invariant: values sum to 100 (within ±0.01) after every rebalance.
type SplitTable map[string]float64

// Sum returns the total of all percentages in the table.
func (t SplitTable) Sum() float64 {
	var total float64
	for _, v := range t {
		total += v
	}
	return total
}

// Clone returns an independent copy of the table.
func (t SplitTable) Clone() SplitTable {
	next := make(SplitTable, len(t))
	for k, v := range t {
		next[k] = v
	}
	return next
}

// AssetAllocation is the per-asset result of applying a split to a budget.
type AssetAllocation struct {
	UsdShare    float64 `json:"usdShare" example:"2500"`
	TokenAmount float64 `json:"tokenAmount" example:"0.041666666"`
}

// Recipient is one planned payout: a beneficiary address bound to a
// destination chain, an asset, and a USD share of the budget.
type Recipient struct {
	ID            string  `json:"id"`
	Address       string  `json:"address" example:"0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063"`
	ChainSelector string  `json:"chainSelector" example:"base-sepolia"`
	AssetSymbol   string  `json:"assetSymbol" example:"USDC"`
	UsdShare      float64 `json:"usdShare" example:"3000"`
}

// TransferDatum is the priced view of a single recipient. Derived from the
// recipient list and the quote table, recomputed on every change, never stored.
type TransferDatum struct {
	ID            string  `json:"id"`
	ChainSelector string  `json:"chainSelector"`
	AssetSymbol   string  `json:"assetSymbol"`
	AssetAmount   float64 `json:"assetAmount"`
	UsdEquivalent float64 `json:"usdEquivalent"`
}

// AssetSubtotal accumulates transfers of one asset within a chain group.
type AssetSubtotal struct {
	Symbol        string  `json:"symbol"`
	TotalAmount   float64 `json:"totalAmount"`
	UsdEquivalent float64 `json:"usdEquivalent"`
}

// ChainSummary groups the transfer plan by destination chain. Transfers counts
// recipients, not distinct assets; Assets keeps first-seen order.
type ChainSummary struct {
	Selector  string          `json:"selector"`
	Transfers int             `json:"transfers"`
	TotalUsd  float64         `json:"totalUsd"`
	Assets    []AssetSubtotal `json:"assets"`
}
