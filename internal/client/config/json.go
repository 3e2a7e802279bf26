package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/licensekeeper/internal/flagx"
	"github.com/dmitrijs2005/licensekeeper/internal/timex"
)

// JsonConfig is the file form of Config.
type JsonConfig struct {
	ServerEndpointAddr string         `json:"server_endpoint_addr"`
	CacheDSN           string         `json:"cache_dsn"`
	DefaultExpiryDays  int            `json:"default_expiry_days"`
	RequestTimeout     timex.Duration `json:"request_timeout"`
}

// parseJson overlays values present in the -c/-config file. It panics on
// read or decode errors.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(file, &jc); err != nil {
		panic(err)
	}

	if jc.ServerEndpointAddr != "" {
		cfg.ServerEndpointAddr = jc.ServerEndpointAddr
	}
	if jc.CacheDSN != "" {
		cfg.CacheDSN = jc.CacheDSN
	}
	if jc.DefaultExpiryDays != 0 {
		cfg.DefaultExpiryDays = jc.DefaultExpiryDays
	}
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}
