// Package dispatch implements the simulated cross-chain dispatch boundary.
// It validates and sanitizes a payout batch, probes destination routers for
// diagnostics, and fabricates a message identifier — no transaction is ever
// submitted. The receipt is explicitly a simulation artifact.
package dispatch

import (
	"context"
	"errors"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/grant-engine/internal/adapters/evmrpc"
	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/common"
	"github.com/hxuan190/grant-engine/internal/config"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/metrics"
	"github.com/hxuan190/grant-engine/internal/services"
)

const DISPATCH_SERVICE = "dispatch-service"

const etaWindow = 5 * time.Minute

var ErrNoValidRecipients = errors.New("at least one recipient is required")

// RouterProber reads a router contract's typeAndVersion. Injectable for tests.
type RouterProber interface {
	TypeAndVersion(ctx context.Context, chain catalog.Chain) (string, error)
}

type Service struct {
	container.BaseDIInstance

	logger *services.ServiceLogger
	cat    *catalog.Catalog
	prober RouterProber
}

// Request is the inbound dispatch payload before sanitization.
type Request struct {
	SourceChain  string                     `json:"sourceChain"`
	TotalUsd     *float64                   `json:"totalUsd"`
	Recipients   []domain.DispatchRecipient `json:"recipients"`
	ChainSummary []domain.ChainSummary      `json:"chainSummary"`
}

func (svc *Service) ID() string {
	return DISPATCH_SERVICE
}

func (svc *Service) Configure(c container.IContainer) error {
	svc.logger = services.NewServiceLogger(svc)
	svc.cat = c.GetConfig(config.CATALOG_CONFIG_KEY).(*config.CatalogConfig).Catalog
	if svc.prober == nil {
		rpcConf := c.GetConfig(config.RPC_CONFIG_KEY).(*config.RPCConfig)
		svc.prober = NewChainProber(evmrpc.New(time.Duration(rpcConf.TimeoutSeconds) * time.Second))
	}
	return nil
}

// SetProber swaps the router prober. Call before use; used by tests.
func (svc *Service) SetProber(p RouterProber) {
	svc.prober = p
}

// Dispatch sanitizes the batch and fabricates a receipt. Invalid recipients
// are dropped, not rejected; only an empty surviving batch is an error.
func (svc *Service) Dispatch(ctx context.Context, req *Request) (*domain.DispatchReceipt, error) {
	recipients := sanitizeRecipients(req.Recipients)
	if len(recipients) == 0 {
		metrics.DispatchRequests.WithLabelValues("rejected").Inc()
		return nil, ErrNoValidRecipients
	}
	if dropped := len(req.Recipients) - len(recipients); dropped > 0 {
		metrics.DispatchRecipientsDropped.Add(float64(dropped))
	}

	totalUsd := committedTotal(recipients)
	if req.TotalUsd != nil && !math.IsNaN(*req.TotalUsd) && !math.IsInf(*req.TotalUsd, 0) {
		totalUsd = *req.TotalUsd
	}

	source := req.SourceChain
	if source == "" {
		source = svc.cat.SourceChain
	}
	selectors := distinctSelectors(recipients)
	lane := source + " ⇒ " + svc.laneDestinations(selectors)

	receipt := &domain.DispatchReceipt{
		MessageID:       fabricateID(),
		Lane:            lane,
		Eta:             time.Now().Add(etaWindow).UTC().Format(time.RFC3339),
		TotalUsd:        totalUsd,
		Recipients:      recipients,
		ChainSummary:    req.ChainSummary,
		SimulatedTxHash: fabricateID(),
		Routers:         svc.probeRouters(ctx, selectors),
	}
	if receipt.ChainSummary == nil {
		receipt.ChainSummary = []domain.ChainSummary{}
	}

	svc.logger.Info().
		Str("messageId", receipt.MessageID).
		Str("lane", lane).
		Int("recipients", len(recipients)).
		Float64("totalUsd", totalUsd).
		Msg("simulated dispatch prepared")
	metrics.DispatchRequests.WithLabelValues("simulated").Inc()
	return receipt, nil
}

// probeRouters reads typeAndVersion from each destination router, one probe
// per distinct chain, concurrently and best-effort.
func (svc *Service) probeRouters(ctx context.Context, selectors []string) []domain.RouterDiagnostic {
	diags := make([]domain.RouterDiagnostic, len(selectors))
	var wg sync.WaitGroup
	for i, selector := range selectors {
		wg.Add(1)
		go func(i int, selector string) {
			defer wg.Done()
			diags[i] = svc.probeOne(ctx, selector)
		}(i, selector)
	}
	wg.Wait()
	return diags
}

func (svc *Service) probeOne(ctx context.Context, selector string) domain.RouterDiagnostic {
	chain, ok := svc.cat.Chain(selector)
	if !ok {
		return domain.RouterDiagnostic{Selector: selector, TypeAndVersion: "missing-chain"}
	}
	version, err := svc.prober.TypeAndVersion(ctx, chain)
	if err != nil {
		svc.logger.Warn().Err(err).Str("selector", selector).Str("router", common.Shorten(chain.Router, 6, 4)).Msg("router probe failed")
		metrics.RouterProbeFailures.WithLabelValues(selector).Inc()
		return domain.RouterDiagnostic{Selector: selector, Router: chain.Router, TypeAndVersion: "unreachable"}
	}
	return domain.RouterDiagnostic{Selector: selector, Router: chain.Router, TypeAndVersion: version}
}

func (svc *Service) laneDestinations(selectors []string) string {
	names := make([]string, len(selectors))
	for i, s := range selectors {
		names[i] = svc.cat.ChainName(s)
	}
	return strings.Join(names, ", ")
}

// sanitizeRecipients normalizes entries and keeps only those with a receiver,
// a chain selector and a positive share. Non-finite numbers become zero and
// fall out through the share filter.
func sanitizeRecipients(raw []domain.DispatchRecipient) []domain.DispatchRecipient {
	out := make([]domain.DispatchRecipient, 0, len(raw))
	for _, r := range raw {
		if math.IsNaN(r.UsdShare) || math.IsInf(r.UsdShare, 0) {
			r.UsdShare = 0
		}
		if math.IsNaN(r.AssetAmount) || math.IsInf(r.AssetAmount, 0) {
			r.AssetAmount = 0
		}
		if r.Receiver == "" || r.ChainSelector == "" || r.UsdShare <= 0 {
			continue
		}
		out = append(out, r)
	}
	return out
}

func committedTotal(recipients []domain.DispatchRecipient) float64 {
	var total float64
	for _, r := range recipients {
		total += r.UsdShare
	}
	return total
}

// distinctSelectors returns destination selectors in first-seen order.
func distinctSelectors(recipients []domain.DispatchRecipient) []string {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]string, 0, len(recipients))
	for _, r := range recipients {
		if _, dup := seen[r.ChainSelector]; dup {
			continue
		}
		seen[r.ChainSelector] = struct{}{}
		out = append(out, r.ChainSelector)
	}
	return out
}

// fabricateID produces a 32-byte-looking hex identifier. It is random, not a
// hash of anything on chain.
func fabricateID() string {
	return "0x" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
