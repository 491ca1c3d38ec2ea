package http

import (
	"errors"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/domain"
	"github.com/hxuan190/grant-engine/internal/http/httputil"
	"github.com/hxuan190/grant-engine/internal/services/pricefeed"
)

type PriceHandler struct {
	feedSvc *pricefeed.Service
	cat     *catalog.Catalog
}

func NewPriceHandler(feedSvc *pricefeed.Service, cat *catalog.Catalog) *PriceHandler {
	return &PriceHandler{feedSvc: feedSvc, cat: cat}
}

func (h *PriceHandler) Root() string {
	return "/prices"
}

func (h *PriceHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getPrices)
}

// PricesResponse carries the resolved quotes and the time they were served.
type PricesResponse struct {
	Prices    []domain.PricePoint `json:"prices"`
	Timestamp string              `json:"timestamp" example:"2025-01-15T10:30:00Z"`
}

// @Summary Get asset prices
// @Description Resolve USD prices for the requested asset symbols from the on-chain
// @Description feeds. Unsupported symbols are dropped; a feed that cannot be read
// @Description answers with the catalog fallback price and a non-live source tag.
// @Description Without a symbols parameter, the full catalog is resolved.
// @Tags prices
// @Produce json
// @Param symbols query string false "Comma-separated asset symbols" example("BTC,ETH,USDC")
// @Success 200 {object} httputil.Response{data=PricesResponse}
// @Failure 400 {object} httputil.Response "No supported symbols in the request"
// @Router /api/v1/prices [get]
func (h *PriceHandler) getPrices(c *gin.Context) {
	symbols := h.cat.Symbols()
	if raw := c.Query("symbols"); raw != "" {
		symbols = strings.Split(raw, ",")
	}

	points, err := h.feedSvc.Resolve(c.Request.Context(), symbols)
	if err != nil {
		if errors.Is(err, pricefeed.ErrNoSupportedAssets) {
			httputil.BadRequest(c, err.Error())
			return
		}
		httputil.InternalError(c, err.Error())
		return
	}
	httputil.Success(c, PricesResponse{
		Prices:    points,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	})
}
