package http

import (
	"github.com/gin-gonic/gin"

	"github.com/hxuan190/grant-engine/internal/catalog"
	"github.com/hxuan190/grant-engine/internal/http/httputil"
)

type CatalogHandler struct {
	cat *catalog.Catalog
}

func NewCatalogHandler(cat *catalog.Catalog) *CatalogHandler {
	return &CatalogHandler{cat: cat}
}

func (h *CatalogHandler) Root() string {
	return "/catalog"
}

func (h *CatalogHandler) SetRoutes(pub *gin.RouterGroup, private *gin.RouterGroup, admin *gin.RouterGroup) {
	pub.GET("", h.getCatalog)
}

// CatalogResponse is the read-only planning catalog. Slice order matters to
// clients: asset cards and the rebalancer's redistribution both follow it.
type CatalogResponse struct {
	SourceChain  string             `json:"sourceChain" example:"Monad"`
	Assets       []catalog.Asset    `json:"assets"`
	Chains       []catalog.Chain    `json:"chains"`
	DefaultSplit map[string]float64 `json:"defaultSplit"`
}

// @Summary Get the planning catalog
// @Description Supported assets, destination chains and the default split
// @Description table clients seed a new plan with.
// @Tags catalog
// @Produce json
// @Success 200 {object} httputil.Response{data=CatalogResponse}
// @Router /api/v1/catalog [get]
func (h *CatalogHandler) getCatalog(c *gin.Context) {
	httputil.Success(c, CatalogResponse{
		SourceChain:  h.cat.SourceChain,
		Assets:       h.cat.Assets,
		Chains:       h.cat.Chains,
		DefaultSplit: h.cat.DefaultSplit,
	})
}
