package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/licensekeeper/internal/flagx"
)

func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-db", "-n", "-T"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port of the license server")
	fs.StringVar(&cfg.CacheDSN, "db", cfg.CacheDSN, "local license cache file")
	fs.IntVar(&cfg.DefaultExpiryDays, "n", cfg.DefaultExpiryDays, "default license length (in days)")
	timeout := fs.Int("T", int(cfg.RequestTimeout.Seconds()), "request timeout (in seconds)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*timeout) * time.Second
}
