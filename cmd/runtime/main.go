package main

import (
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	container "github.com/thehyperflames/dicontainer-go"

	"github.com/hxuan190/grant-engine/internal/config"
	"github.com/hxuan190/grant-engine/internal/http"
	"github.com/hxuan190/grant-engine/internal/services"
	"github.com/hxuan190/grant-engine/internal/services/dispatch"
	"github.com/hxuan190/grant-engine/internal/services/pricefeed"
	"github.com/hxuan190/grant-engine/internal/services/wallet"
)

// @title Grant Engine API
// @version 1.0
// @description Multi-chain grant payout planning API. Plans USD budgets across
// @description assets and CCIP testnet destination chains, prices them against
// @description on-chain feeds, and simulates cross-chain dispatch.
// @description
// @description ## - Features
// @description - **Split Rebalancing**: Pin one asset's percentage, redistribute the rest proportionally
// @description - **Live Pricing**: On-chain aggregator feeds with per-asset fallback on failure
// @description - **Transfer Aggregation**: Per-chain summaries with per-asset subtotals
// @description - **Simulated Dispatch**: CCIP-style receipts with router diagnostics, no transaction submitted
// @description - **Wallet Overview**: Native and USDC balances across all supported chains
// @description
// @description ## - API Status
// @description - **Network**: CCIP testnets (Arbitrum/Base/OP/Ethereum Sepolia, Avalanche Fuji)
// @description - **Rate Limit**: 10 requests/second (burst: 20)
// @description
// @description ## - Notes
// @description - Dispatch is a SIMULATION: messageId and simulatedTxHash are fabricated
// @description - Amounts are USD floats; token amounts are derived from live or fallback prices
// @BasePath /
// @schemes https http
// @tag.name prices
// @tag.description Resolve asset prices from on-chain feeds
// @tag.name plan
// @tag.description Compute and rebalance payout plans
// @tag.name dispatch
// @tag.description Simulate cross-chain payout dispatch
// @tag.name catalog
// @tag.description Supported assets, chains and defaults
// @tag.name wallet
// @tag.description Wallet balances across supported chains

func main() {
	// optional: absent .env is fine, real env wins
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	generalConf := &config.GeneralConfig{}

	// di container config
	conf := container.NewConf(
		generalConf,
		&config.RPCConfig{},
		&config.FeedConfig{},
		&config.CatalogConfig{},
	)

	// di container
	dic, err := container.New(
		conf,

		&pricefeed.Service{},
		&dispatch.Service{},
		&wallet.Service{},

		&http.HTTPService{},
	)
	if err != nil {
		log.Error().Err(err).Msg("failed to create di container")
		return
	}

	// configs are loaded once the container exists
	services.SetGlobalLevel(generalConf.LogLevel)

	if err := dic.Run(); err != nil {
		log.Error().Err(err).Msg("failed to run di container")
		return
	}

	log.Info().Msg("Shutting down services...")
	if err := dic.Stop(); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("Shutdown complete")
}
