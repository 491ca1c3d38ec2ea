package domain

// Source tags reported on degraded quotes. A live quote carries the feed
// contract address as its source instead.
const (
	SourceFallback    = "fallback"
	SourceFeedError   = "feed-error"
	SourceMissingFeed = "missing-feed"
)

// PricePoint is one resolved asset quote. Resolution never fails outright:
// when the live feed cannot be read, the catalog fallback price is served
// with IsFallback set and Source naming the degradation reason.
type PricePoint struct {
	Symbol     string  `json:"symbol" example:"BTC"`
	Price      float64 `json:"price" example:"60000"`
	UpdatedAt  string  `json:"updatedAt" example:"2026-01-12T09:30:00Z"`
	Source     string  `json:"source" example:"0x2Cd9D7E85494F68F5aF08EF96d6FD5e8F71B4d31"`
	IsFallback bool    `json:"isFallback" example:"false"`
}
