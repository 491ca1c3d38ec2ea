package http

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/http/httputil"
	"github.com/hxuan190/grant-engine/internal/services/planner"
)

type staticQuotes map[string]domain.PricePoint

func (q staticQuotes) Snapshot() map[string]domain.PricePoint {
	return q
}

func newPlanRouter(quotes QuoteSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cat := catalog.Default()
	h := NewPlanHandler(planner.New(cat), quotes, cat)
	r := gin.New()
	grp := r.Group(h.Root())
	h.SetRoutes(grp, grp, grp)
	return r
}

func TestComputePlanAcceptsZeroBudget(t *testing.T) {
	r := newPlanRouter(staticQuotes{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan", strings.NewReader(`{"totalUsd":0}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d, want 200 for a zero budget (body %s)", w.Code, w.Body.String())
	}
	var envelope struct {
		Success bool         `json:"success"`
		Data    PlanResponse `json:"data"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !envelope.Success {
		t.Error("success = false, want true")
	}
	if envelope.Data.RemainingBudget != 0 || envelope.Data.CommittedUsd != 0 {
		t.Errorf("data = %+v, want zeroed budget fields", envelope.Data)
	}
}

func TestComputePlanPricesRecipients(t *testing.T) {
	r := newPlanRouter(staticQuotes{"USDC": {Symbol: "USDC", Price: 1}})

	body := `{"totalUsd":10000,"splits":{"USDC":100},
		"recipients":[{"id":"a","chainSelector":"base-sepolia","assetSymbol":"USDC","usdShare":3000}]}`
	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != 200 {
		t.Fatalf("status = %d (body %s)", w.Code, w.Body.String())
	}
	var envelope struct {
		Data PlanResponse `json:"data"`
	}
	if err := sonic.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Data.RemainingBudget != 7000 {
		t.Errorf("remainingBudget = %v, want 7000", envelope.Data.RemainingBudget)
	}
	if len(envelope.Data.Transfers) != 1 || envelope.Data.Transfers[0].AssetAmount != 3000 {
		t.Errorf("transfers = %+v, want one USDC transfer of 3000", envelope.Data.Transfers)
	}
}

func TestRebalanceRejectsUnknownAsset(t *testing.T) {
	r := newPlanRouter(staticQuotes{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/plan/rebalance", strings.NewReader(`{"changedAsset":"DOGE","value":10}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	if w.Code != 400 {
		t.Fatalf("status = %d, want 400 for unknown asset", w.Code)
	}
	var envelope httputil.Response
	if err := sonic.Unmarshal(w.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if envelope.Success || envelope.Error == "" {
		t.Errorf("envelope = %+v, want failure with message", envelope)
	}
}
