package wallet

import (
	"context"
	"errors"
	"testing"

	"github.com/holiman/uint256"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/services"
)

type fakeBalances struct {
	native map[string]uint64 // rpcURL -> wei
	erc20  map[string]uint64 // rpcURL -> base units
	errs   map[string]error
}

func (f *fakeBalances) NativeBalance(_ context.Context, rpcURL, _ string) (*uint256.Int, error) {
	if err, ok := f.errs[rpcURL]; ok {
		return nil, err
	}
	return uint256.NewInt(f.native[rpcURL]), nil
}

func (f *fakeBalances) ERC20Balance(_ context.Context, rpcURL, _, _ string) (*uint256.Int, error) {
	return uint256.NewInt(f.erc20[rpcURL]), nil
}

func newTestService(reader BalanceReader) *Service {
	svc := &Service{cat: catalog.Default(), reader: reader}
	svc.logger = services.NewServiceLogger(svc)
	return svc
}

const testAddress = "0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063"

func TestBalancesRejectsBadAddress(t *testing.T) {
	svc := newTestService(&fakeBalances{})
	for _, addr := range []string{"", "vitalik.eth", "0x123", "8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063"} {
		if _, err := svc.Balances(context.Background(), addr); !errors.Is(err, ErrInvalidAddress) {
			t.Errorf("address %q: err = %v, want ErrInvalidAddress", addr, err)
		}
	}
}

func TestBalancesPerChain(t *testing.T) {
	cat := catalog.Default()
	baseRPC := cat.Chains[2].RPCURL // base-sepolia
	fujiRPC := cat.Chains[1].RPCURL // avalanche-fuji

	svc := newTestService(&fakeBalances{
		native: map[string]uint64{baseRPC: 1_500_000_000_000_000_000}, // 1.5 ETH
		erc20:  map[string]uint64{baseRPC: 2_000_000},                 // 2 USDC
		errs:   map[string]error{fujiRPC: errors.New("timeout")},
	})

	balances, err := svc.Balances(context.Background(), testAddress)
	if err != nil {
		t.Fatalf("Balances: %v", err)
	}
	if len(balances) != len(cat.Chains) {
		t.Fatalf("got %d entries, want one per chain", len(balances))
	}

	bySel := map[string]ChainBalance{}
	for _, b := range balances {
		bySel[b.Selector] = b
	}
	base := bySel["base-sepolia"]
	if !base.Ok || base.Native != 1.5 || base.Usdc != 2 {
		t.Errorf("base-sepolia = %+v, want ok with 1.5 native / 2 USDC", base)
	}
	fuji := bySel["avalanche-fuji"]
	if fuji.Ok || fuji.Error != "unreachable" {
		t.Errorf("avalanche-fuji = %+v, want unreachable and not ok", fuji)
	}
}
