package config

import (
	"github.com/andrew-solarstorm/go-packages/common"

	"github.com/hxuan190/grant-engine/internal/catalog"
)

// CatalogConfig resolves the chain/asset/feed tables at boot: built-in
// defaults, optionally overridden by a TOML file named in CATALOG_PATH.
type CatalogConfig struct {
	Path    string
	Catalog *catalog.Catalog
}

func (cc *CatalogConfig) Key() string {
	return CATALOG_CONFIG_KEY
}

func (cc *CatalogConfig) Load() error {
	cc.Path = common.GetEnvOrDefault("CATALOG_PATH", "")
	cat, err := catalog.Load(cc.Path)
	if err != nil {
		return err
	}
	cc.Catalog = cat
	return nil
}

func (cc *CatalogConfig) Validate() error {
	return nil
}
