package dispatch

import (
	"context"
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/services"
)

type fakeProber struct {
	versions map[string]string
	errs     map[string]error
}

func (f *fakeProber) TypeAndVersion(_ context.Context, chain catalog.Chain) (string, error) {
	if err, ok := f.errs[chain.Selector]; ok {
		return "", err
	}
	return f.versions[chain.Selector], nil
}

func newTestService(prober RouterProber) *Service {
	svc := &Service{cat: catalog.Default(), prober: prober}
	svc.logger = services.NewServiceLogger(svc)
	return svc
}

func validRecipient() domain.DispatchRecipient {
	return domain.DispatchRecipient{
		Receiver:      "0x0000000000000000000000000000000000000003",
		Beneficiary:   "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063",
		ChainSelector: "base-sepolia",
		AssetSymbol:   "USDC",
		UsdShare:      3000,
		AssetAmount:   3000,
	}
}

func TestDispatchRejectsEmptyBatch(t *testing.T) {
	svc := newTestService(&fakeProber{})

	if _, err := svc.Dispatch(context.Background(), &Request{}); !errors.Is(err, ErrNoValidRecipients) {
		t.Errorf("err = %v, want ErrNoValidRecipients", err)
	}

	// All entries invalid: dropped, then rejected.
	req := &Request{Recipients: []domain.DispatchRecipient{
		{Receiver: "", ChainSelector: "base-sepolia", UsdShare: 100},
		{Receiver: "0x01", ChainSelector: "", UsdShare: 100},
		{Receiver: "0x01", ChainSelector: "base-sepolia", UsdShare: 0},
		{Receiver: "0x01", ChainSelector: "base-sepolia", UsdShare: -5},
	}}
	if _, err := svc.Dispatch(context.Background(), req); !errors.Is(err, ErrNoValidRecipients) {
		t.Errorf("err = %v, want ErrNoValidRecipients after sanitization", err)
	}
}

func TestDispatchDropsInvalidKeepsValid(t *testing.T) {
	svc := newTestService(&fakeProber{versions: map[string]string{"base-sepolia": "Router 1.2.0"}})

	req := &Request{Recipients: []domain.DispatchRecipient{
		validRecipient(),
		{Receiver: "", ChainSelector: "op-sepolia", UsdShare: 100},
	}}
	receipt, err := svc.Dispatch(context.Background(), req)
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(receipt.Recipients) != 1 {
		t.Errorf("kept %d recipients, want 1", len(receipt.Recipients))
	}
	if receipt.TotalUsd != 3000 {
		t.Errorf("totalUsd = %v, want committed sum 3000", receipt.TotalUsd)
	}
}

func TestDispatchTotalUsdOverride(t *testing.T) {
	svc := newTestService(&fakeProber{})
	total := 9999.5
	receipt, err := svc.Dispatch(context.Background(), &Request{
		TotalUsd:   &total,
		Recipients: []domain.DispatchRecipient{validRecipient()},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if receipt.TotalUsd != 9999.5 {
		t.Errorf("totalUsd = %v, want explicit 9999.5", receipt.TotalUsd)
	}

	nan := math.NaN()
	receipt, err = svc.Dispatch(context.Background(), &Request{
		TotalUsd:   &nan,
		Recipients: []domain.DispatchRecipient{validRecipient()},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if receipt.TotalUsd != 3000 {
		t.Errorf("totalUsd = %v, want committed sum when override is NaN", receipt.TotalUsd)
	}
}

func TestDispatchLaneAndIdentifiers(t *testing.T) {
	svc := newTestService(&fakeProber{})

	second := validRecipient()
	second.ChainSelector = "op-sepolia"
	third := validRecipient() // duplicate chain, must not repeat in the lane
	receipt, err := svc.Dispatch(context.Background(), &Request{
		Recipients: []domain.DispatchRecipient{validRecipient(), second, third},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}

	if receipt.Lane != "Monad ⇒ Base Sepolia, OP Sepolia" {
		t.Errorf("lane = %q", receipt.Lane)
	}
	for _, id := range []string{receipt.MessageID, receipt.SimulatedTxHash} {
		if !strings.HasPrefix(id, "0x") || len(id) != 2+32 {
			t.Errorf("identifier %q: want 0x-prefixed 32 hex chars", id)
		}
	}
	if receipt.MessageID == receipt.SimulatedTxHash {
		t.Error("messageId and simulatedTxHash should be independent")
	}

	receipt, err = svc.Dispatch(context.Background(), &Request{
		SourceChain: "Testnet Hub",
		Recipients:  []domain.DispatchRecipient{validRecipient()},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if !strings.HasPrefix(receipt.Lane, "Testnet Hub ⇒ ") {
		t.Errorf("lane = %q, want explicit source chain", receipt.Lane)
	}
}

func TestDispatchRouterDiagnostics(t *testing.T) {
	svc := newTestService(&fakeProber{
		versions: map[string]string{"base-sepolia": "Router 1.2.0"},
		errs:     map[string]error{"op-sepolia": errors.New("timeout")},
	})

	second := validRecipient()
	second.ChainSelector = "op-sepolia"
	unknown := validRecipient()
	unknown.ChainSelector = "nowhere-1"

	receipt, err := svc.Dispatch(context.Background(), &Request{
		Recipients: []domain.DispatchRecipient{validRecipient(), second, unknown},
	})
	if err != nil {
		t.Fatalf("Dispatch: %v", err)
	}
	if len(receipt.Routers) != 3 {
		t.Fatalf("got %d diagnostics, want 3 (one per distinct chain)", len(receipt.Routers))
	}
	bySel := map[string]domain.RouterDiagnostic{}
	for _, d := range receipt.Routers {
		bySel[d.Selector] = d
	}
	if d := bySel["base-sepolia"]; d.TypeAndVersion != "Router 1.2.0" || d.Router == "" {
		t.Errorf("base-sepolia diagnostic = %+v", d)
	}
	if d := bySel["op-sepolia"]; d.TypeAndVersion != "unreachable" {
		t.Errorf("op-sepolia diagnostic = %+v, want unreachable", d)
	}
	if d := bySel["nowhere-1"]; d.TypeAndVersion != "missing-chain" || d.Router != "" {
		t.Errorf("nowhere-1 diagnostic = %+v, want missing-chain", d)
	}
}
