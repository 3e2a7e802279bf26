// Package config loads runtime configuration for the license client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags.
//
// Flags
//
//	-a string   address:port of the license server
//	-db string  path of the local license cache (SQLite)
//	-n int      default license length in days for "generate"
//	-T int      request timeout (seconds)
//
// JSON keys mirror the flags:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "cache_dsn": "license.db",
//	  "default_expiry_days": 30,
//	  "request_timeout": "10s"
//	}
package config
