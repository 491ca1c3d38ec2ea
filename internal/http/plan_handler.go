package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/http/httputil"
	"github.com/hxuan190/grant-engine/internal/metrics"
	"github.com/hxuan190/grant-engine/internal/services/planner"
)

// QuoteSource is the slice of the price feed service the handler needs.
type QuoteSource interface {
	Snapshot() map[string]domain.PricePoint
}

type PlanHandler struct {
	planner *planner.Planner
	quotes  QuoteSource
	cat     *catalog.Catalog
}

func NewPlanHandler(p *planner.Planner, quotes QuoteSource, cat *catalog.Catalog) *PlanHandler {
	return &PlanHandler{planner: p, quotes: quotes, cat: cat}
}

func (h *PlanHandler) Root() string {
	return "/plan"
}

func (h *PlanHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.computePlan)
	pub.POST("/rebalance", h.rebalance)
}

// PlanRequest is a payout plan to be priced and aggregated.
type PlanRequest struct {
	// Total grant budget in USD. Zero is a valid budget, so the field
	// carries no required binding.
	TotalUsd float64 `json:"totalUsd" example:"10000"`

	// Percentage split per asset symbol; omitted assets count as 0
	Splits domain.SplitTable `json:"splits"`

	// Recipients already added to the plan
	Recipients []domain.Recipient `json:"recipients"`
}

// PlanResponse is the recomputed view of the plan.
type PlanResponse struct {
	Allocations     map[string]domain.AssetAllocation `json:"allocations"`
	Transfers       []domain.TransferDatum            `json:"transfers"`
	ChainSummaries  []domain.ChainSummary             `json:"chainSummaries"`
	CommittedUsd    float64                           `json:"committedUsd" example:"4500"`
	RemainingBudget float64                           `json:"remainingBudget" example:"5500"`
}

// RebalanceRequest pins one asset's percentage and asks for the rest to be
// redistributed.
type RebalanceRequest struct {
	Splits       domain.SplitTable `json:"splits"`
	ChangedAsset string            `json:"changedAsset" binding:"required" example:"BTC"`
	Value        float64           `json:"value" example:"50"`
}

// @Summary Compute a payout plan
// @Description Price the split table and recipient list against the current
// @Description quote table: per-asset USD shares and token amounts, per-recipient
// @Description transfer data, per-chain summaries and the remaining budget.
// @Description Degraded feeds fall back to catalog prices; the remaining budget
// @Description is advisory and over-committed plans are still computed.
// @Tags plan
// @Accept json
// @Produce json
// @Param request body PlanRequest true "Plan to compute"
// @Success 200 {object} httputil.Response{data=PlanResponse}
// @Failure 400 {object} httputil.Response "Malformed body"
// @Router /api/v1/plan [post]
func (h *PlanHandler) computePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.PlanRequests.WithLabelValues("rejected").Inc()
		httputil.BadRequest(c, err.Error())
		return
	}

	quotes := h.quotes.Snapshot()
	transfers := h.planner.Transfers(req.Recipients, quotes)

	resp := PlanResponse{
		Allocations:     h.planner.Allocate(req.TotalUsd, req.Splits, quotes),
		Transfers:       transfers,
		ChainSummaries:  planner.SummarizeByChain(transfers),
		CommittedUsd:    planner.CommittedUsd(req.Recipients),
		RemainingBudget: planner.RemainingBudget(req.TotalUsd, req.Recipients),
	}
	metrics.PlanRequests.WithLabelValues("computed").Inc()
	httputil.Success(c, resp)
}

// @Summary Rebalance the split table
// @Description Set one asset's percentage and redistribute the remainder across
// @Description the other assets in proportion to their prior weights. The result
// @Description covers every supported asset and sums to the stored total.
// @Tags plan
// @Accept json
// @Produce json
// @Param request body RebalanceRequest true "Pinned asset and new value"
// @Success 200 {object} httputil.Response{data=domain.SplitTable}
// @Failure 400 {object} httputil.Response "Unknown asset symbol"
// @Router /api/v1/plan/rebalance [post]
func (h *PlanHandler) rebalance(c *gin.Context) {
	var req RebalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}
	if _, ok := h.cat.Asset(req.ChangedAsset); !ok {
		httputil.BadRequest(c, "unknown asset symbol: "+req.ChangedAsset)
		return
	}
	httputil.Success(c, h.planner.Rebalance(req.Splits, req.ChangedAsset, req.Value))
}
