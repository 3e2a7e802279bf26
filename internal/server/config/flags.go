package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-d", "-s", "-t", "-l",
	"-k", "-f", "-P", "-S",
	"-u", "-p", "-b", "-g", "-e", "-o",
}

// parseFlags overlays command-line flags on config. Only the flags above are
// considered, so -c/-config and unknown flags pass through harmlessly.
// The access token validity (-t) is given in minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], serverFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC listen address")
	fs.StringVar(&config.MetricsAddr, "m", config.MetricsAddr, "metrics listen address (empty disables)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "access token signing secret")
	accessTokenValidity := fs.Int("t", int(config.AccessTokenValidityDuration.Minutes()), "access token validity (in minutes)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level: debug, info, warn, error")

	fs.StringVar(&config.KeySource, "k", config.KeySource, "license key source: file, s3, passphrase")
	fs.StringVar(&config.KeyFile, "f", config.KeyFile, "license key file")
	fs.StringVar(&config.KeyPassphrase, "P", config.KeyPassphrase, "license key passphrase")
	fs.StringVar(&config.KeySalt, "S", config.KeySalt, "license key salt")

	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "p", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3KeyObject, "o", config.S3KeyObject, "S3 object holding the license key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AccessTokenValidityDuration = time.Duration(*accessTokenValidity) * time.Minute
}
