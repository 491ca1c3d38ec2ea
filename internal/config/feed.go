package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

// FeedConfig controls the price feed refresh loop.
type FeedConfig struct {
	// RefreshSeconds is the cadence of the background quote refresh.
	RefreshSeconds int
}

func (f *FeedConfig) Key() string {
	return FEED_CONFIG_KEY
}

func (f *FeedConfig) Load() error {
	f.RefreshSeconds = common.GetEnvOrDefaultInt("FEED_REFRESH_SECONDS", 60)
	return f.Validate()
}

func (f *FeedConfig) Validate() error {
	if f.RefreshSeconds <= 0 {
		return errors.New("invalid feed config: refresh interval must be positive")
	}
	return nil
}
