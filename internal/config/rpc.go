package config

import (
	"errors"

	"github.com/andrew-solarstorm/go-packages/common"
)

// RPCConfig covers the outbound EVM JSON-RPC behavior shared by the feed,
// dispatch and wallet services. Endpoint URLs themselves live in the catalog;
// only transport knobs are env-driven.
type RPCConfig struct {
	// TimeoutSeconds bounds each JSON-RPC request.
	TimeoutSeconds int
}

func (r *RPCConfig) Key() string {
	return RPC_CONFIG_KEY
}

func (r *RPCConfig) Load() error {
	r.TimeoutSeconds = common.GetEnvOrDefaultInt("RPC_TIMEOUT_SECONDS", 10)
	return r.Validate()
}

func (r *RPCConfig) Validate() error {
	if r.TimeoutSeconds <= 0 {
		return errors.New("invalid rpc config: timeout must be positive")
	}
	return nil
}
