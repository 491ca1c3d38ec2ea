package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/http/httputil"
	"github.com/hxuan190/grant-engine/internal/services/dispatch"
)

type DispatchHandler struct {
	dispatchSvc *dispatch.Service
}

func NewDispatchHandler(dispatchSvc *dispatch.Service) *DispatchHandler {
	return &DispatchHandler{dispatchSvc: dispatchSvc}
}

func (h *DispatchHandler) Root() string {
	return "/dispatch"
}

func (h *DispatchHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.POST("", h.dispatch)
}

// @Summary Simulate a cross-chain payout dispatch
// @Description Validate the payout batch and return a simulated receipt.
// @Description Recipients without a receiver, chain or positive USD share are
// @Description dropped; an empty surviving batch is rejected. Destination routers
// @Description are probed for typeAndVersion diagnostics, best-effort.
// @Description **No transaction is submitted** — messageId and simulatedTxHash
// @Description are fabricated identifiers.
// @Tags dispatch
// @Accept json
// @Produce json
// @Param request body dispatch.Request true "Payout batch"
// @Success 200 {object} httputil.Response{data=domain.DispatchReceipt}
// @Failure 400 {object} httputil.Response "No valid recipients"
// @Router /api/v1/dispatch [post]
func (h *DispatchHandler) dispatch(c *gin.Context) {
	var req dispatch.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.BadRequest(c, err.Error())
		return
	}

	receipt, err := h.dispatchSvc.Dispatch(c.Request.Context(), &req)
	if err != nil {
		if errors.Is(err, dispatch.ErrNoValidRecipients) {
			httputil.BadRequest(c, err.Error())
			return
		}
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, receipt)
}
