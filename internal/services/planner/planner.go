// Package planner implements the pure grant-planning calculators: split
// rebalancing, budget allocation, and transfer aggregation. Every function is
// deterministic over its inputs and total — zero prices, empty recipient
// lists and zero remainders all take explicit zero-safe branches instead of
// returning errors.
package planner

import (
	"math"
	"strconv"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/domain"
)

// correctionThreshold decides when rounding drift is pushed back onto the
// first other asset. The cushion above 0.01 keeps accumulated float noise at
// exactly the boundary (e.g. a 99.5 remainder) on one side of it.
const correctionThreshold = 0.01 + 1e-9

type Planner struct {
	cat *catalog.Catalog
}

func New(cat *catalog.Catalog) *Planner {
	return &Planner{cat: cat}
}

// Rebalance applies a user edit of one asset's percentage and redistributes
// the remainder over the other assets proportionally to their prior weights.
// The edited value is stored as given — only the derived remainder is floored
// at zero — and the result always covers every catalog symbol and sums to 100
// within ±0.01.
//
// Rounding error from the 2-decimal rounding is pushed onto the first other
// asset in catalog order, so catalog ordering must stay stable.
func (p *Planner) Rebalance(current domain.SplitTable, changed string, value float64) domain.SplitTable {
	symbols := p.cat.Symbols()
	next := make(domain.SplitTable, len(symbols))
	for _, s := range symbols {
		next[s] = current[s]
	}
	next[changed] = value

	others := make([]string, 0, len(symbols))
	for _, s := range symbols {
		if s != changed {
			others = append(others, s)
		}
	}

	remaining := math.Max(0, 100-value)
	var otherTotal float64
	for _, s := range others {
		otherTotal += current[s]
	}

	if otherTotal == 0 {
		// All other weights are zero: the first other asset takes the whole
		// remainder so the 100% invariant holds without dividing by zero.
		for i, s := range others {
			if i == 0 {
				next[s] = remaining
			} else {
				next[s] = 0
			}
		}
		return next
	}

	for _, s := range others {
		next[s] = round2(remaining * (current[s] / otherTotal))
	}

	// Summed in catalog order: map iteration order would change the float
	// accumulation and flip the threshold decision between identical calls.
	var total float64
	for _, s := range symbols {
		total += next[s]
	}
	if correction := 100 - total; math.Abs(correction) > correctionThreshold {
		first := changed
		if len(others) > 0 {
			first = others[0]
		}
		next[first] = round2(next[first] + correction)
	}
	return next
}

// Allocate applies a split table to a USD budget and prices each share.
// An asset with an unknown or zero price yields a zero token amount.
func (p *Planner) Allocate(totalUsd float64, splits domain.SplitTable, quotes map[string]domain.PricePoint) map[string]domain.AssetAllocation {
	out := make(map[string]domain.AssetAllocation, len(p.cat.Assets))
	for _, asset := range p.cat.Assets {
		usdShare := totalUsd * splits[asset.Symbol] / 100
		price := p.priceFor(asset.Symbol, quotes)
		var tokenAmount float64
		if price > 0 {
			tokenAmount = usdShare / price
		}
		out[asset.Symbol] = domain.AssetAllocation{UsdShare: usdShare, TokenAmount: tokenAmount}
	}
	return out
}

// Transfers prices each recipient's share into a token amount.
func (p *Planner) Transfers(recipients []domain.Recipient, quotes map[string]domain.PricePoint) []domain.TransferDatum {
	out := make([]domain.TransferDatum, 0, len(recipients))
	for _, r := range recipients {
		price := p.priceFor(r.AssetSymbol, quotes)
		var amount float64
		if price > 0 {
			amount = r.UsdShare / price
		}
		out = append(out, domain.TransferDatum{
			ID:            r.ID,
			ChainSelector: r.ChainSelector,
			AssetSymbol:   r.AssetSymbol,
			AssetAmount:   amount,
			UsdEquivalent: r.UsdShare,
		})
	}
	return out
}

// SummarizeByChain groups transfers by destination chain. Chains appear in
// first-seen order, as do the per-asset subtotals inside each chain; repeated
// assets accumulate into their existing subtotal. Chains without transfers
// get no entry.
func SummarizeByChain(transfers []domain.TransferDatum) []domain.ChainSummary {
	order := make([]string, 0, 4)
	bySel := make(map[string]*domain.ChainSummary, 4)
	for _, t := range transfers {
		summary, ok := bySel[t.ChainSelector]
		if !ok {
			summary = &domain.ChainSummary{Selector: t.ChainSelector}
			bySel[t.ChainSelector] = summary
			order = append(order, t.ChainSelector)
		}
		idx := -1
		for i := range summary.Assets {
			if summary.Assets[i].Symbol == t.AssetSymbol {
				idx = i
				break
			}
		}
		if idx >= 0 {
			summary.Assets[idx].TotalAmount += t.AssetAmount
			summary.Assets[idx].UsdEquivalent += t.UsdEquivalent
		} else {
			summary.Assets = append(summary.Assets, domain.AssetSubtotal{
				Symbol:        t.AssetSymbol,
				TotalAmount:   t.AssetAmount,
				UsdEquivalent: t.UsdEquivalent,
			})
		}
		summary.Transfers++
		summary.TotalUsd += t.UsdEquivalent
	}
	out := make([]domain.ChainSummary, 0, len(order))
	for _, sel := range order {
		out = append(out, *bySel[sel])
	}
	return out
}

// RemainingBudget is the uncommitted part of the budget, clamped at zero.
// Advisory only: it guards recipient creation, nothing re-checks it when an
// existing recipient's share is edited upward.
func RemainingBudget(total float64, recipients []domain.Recipient) float64 {
	var committed float64
	for _, r := range recipients {
		committed += r.UsdShare
	}
	return math.Max(0, total-committed)
}

// CommittedUsd sums the recipients' USD shares.
func CommittedUsd(recipients []domain.Recipient) float64 {
	var committed float64
	for _, r := range recipients {
		committed += r.UsdShare
	}
	return committed
}

// SanitizeNumber parses free-form numeric input: separators and currency
// glyphs are stripped, the longest leading decimal run is parsed, and
// anything unparseable becomes 0 rather than an error.
func SanitizeNumber(raw string) float64 {
	cleaned := make([]rune, 0, len(raw))
	for _, r := range raw {
		if (r >= '0' && r <= '9') || r == '.' {
			cleaned = append(cleaned, r)
		}
	}
	// Longest valid prefix: a second dot ends the number, as in "12.3.4".
	dotSeen := false
	end := 0
	for i, r := range cleaned {
		if r == '.' {
			if dotSeen {
				break
			}
			dotSeen = true
		}
		end = i + 1
	}
	v, err := strconv.ParseFloat(string(cleaned[:end]), 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0
	}
	return v
}

// priceFor resolves a symbol's price: live quote when present, catalog
// fallback otherwise. A degraded quote still counts as present — the feed
// layer guarantees its price is the fallback value, never a hard failure.
func (p *Planner) priceFor(symbol string, quotes map[string]domain.PricePoint) float64 {
	if q, ok := quotes[symbol]; ok {
		return q.Price
	}
	return p.cat.FallbackPrice(symbol)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
