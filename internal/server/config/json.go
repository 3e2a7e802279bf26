package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/licensekeeper/internal/flagx"
	"github.com/dmitrijs2005/licensekeeper/internal/timex"
)

// JsonConfig is the file form of Config. Durations accept "15m" or
// integer nanoseconds.
type JsonConfig struct {
	EndpointAddrGRPC            string         `json:"endpoint_addr_grpc"`
	MetricsAddr                 string         `json:"metrics_addr"`
	DatabaseDSN                 string         `json:"database_dsn"`
	SecretKey                   string         `json:"secret_key"`
	AccessTokenValidityDuration timex.Duration `json:"access_token_validity_duration"`
	LogLevel                    string         `json:"log_level"`
	BcryptCost                  int            `json:"bcrypt_cost"`
	KeySource                   string         `json:"key_source"`
	KeyFile                     string         `json:"key_file"`
	KeyPassphrase               string         `json:"key_passphrase"`
	KeySalt                     string         `json:"key_salt"`
	S3RootUser                  string         `json:"s3_root_user"`
	S3RootPassword              string         `json:"s3_root_password"`
	S3Bucket                    string         `json:"s3_bucket"`
	S3Region                    string         `json:"s3_region"`
	S3BaseEndpoint              string         `json:"s3_base_endpoint"`
	S3KeyObject                 string         `json:"s3_key_object"`
}

// parseJson overlays the file named by -c/-config onto config. Keys that are
// absent from the file leave the current value alone. A missing or broken
// file panics.
func parseJson(config *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	c := &JsonConfig{}
	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.MetricsAddr, c.MetricsAddr)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	if c.AccessTokenValidityDuration.Duration != 0 {
		config.AccessTokenValidityDuration = c.AccessTokenValidityDuration.Duration
	}
	setString(&config.LogLevel, c.LogLevel)
	if c.BcryptCost != 0 {
		config.BcryptCost = c.BcryptCost
	}
	setString(&config.KeySource, c.KeySource)
	setString(&config.KeyFile, c.KeyFile)
	setString(&config.KeyPassphrase, c.KeyPassphrase)
	setString(&config.KeySalt, c.KeySalt)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3KeyObject, c.S3KeyObject)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
