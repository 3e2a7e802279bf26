package config

import "time"

// Config holds runtime settings for the license client.
type Config struct {
	ServerEndpointAddr string
	CacheDSN           string
	DefaultExpiryDays  int
	RequestTimeout     time.Duration
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.CacheDSN = "license.db"
	c.DefaultExpiryDays = 30
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig applies defaults, then JSON, then flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
