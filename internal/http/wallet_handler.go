package http

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/http/httputil"
	"github.com/hxuan190/grant-engine/internal/metrics"
	"github.com/hxuan190/grant-engine/internal/services/wallet"
)

type WalletHandler struct {
	walletSvc *wallet.Service
}

func NewWalletHandler(walletSvc *wallet.Service) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc}
}

func (h *WalletHandler) Root() string {
	return "/wallet"
}

func (h *WalletHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("/:address/balances", h.getBalances)
}

// @Summary Get wallet balances across supported chains
// @Description Native coin and USDC balance per destination chain, read
// @Description concurrently. Chains that cannot be reached are reported with
// @Description ok=false instead of failing the whole lookup.
// @Tags wallet
// @Produce json
// @Param address path string true "EVM wallet address (0x + 40 hex chars)" example("0x8f3Cf7ad23Cd3CaDbD9735AFf958023239c6A063")
// @Success 200 {object} httputil.Response{data=[]wallet.ChainBalance}
// @Failure 400 {object} httputil.Response "Malformed address"
// @Router /api/v1/wallet/{address}/balances [get]
func (h *WalletHandler) getBalances(c *gin.Context) {
	balances, err := h.walletSvc.Balances(c.Request.Context(), c.Param("address"))
	if err != nil {
		if errors.Is(err, wallet.ErrInvalidAddress) {
			httputil.BadRequest(c, err.Error())
			return
		}
		httputil.InternalError(c, err.Error())
		return
	}
	metrics.WalletLookups.Inc()
	httputil.Success(c, balances)
}
