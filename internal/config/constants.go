package config

import "time"

// ConfigFileEnv names the environment variable pointing at an optional YAML config file.
const ConfigFileEnv = "BOT_CONFIG"

// Default configuration values
const (
	DefaultCollectionName = "World Icons Cards"
	DefaultDataDir        = "data"
	DefaultCoinGeckoURL   = "https://api.coingecko.com/api/v3/simple/price"
	DefaultHeliusURL      = "https://mainnet.helius-rpc.com/"
	DefaultPriceCacheTTL  = 30 * time.Second
	DefaultHTTPAddr       = ":8082"
)

// unsetID is how the deployment templates spell an unconfigured snowflake.
const unsetID = "0"
