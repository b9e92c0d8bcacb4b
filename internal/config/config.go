// Package config provides functionality for managing configuration
// options for the client and the dev server using command-line flags,
// an optional JSON config file, and environment variables.
package config

import (
	"encoding/json"
	"flag"
	"log"
	"os"

	"github.com/caarlos0/env/v11"
)

// Options holds the configuration values for the client binaries.
type Options struct {
	// ServerURL is the base URL of the BlitzWare backend.
	ServerURL string `json:"server_url" env:"BLITZWARE_SERVER_URL"`

	// CachePath is the path of the local SQLite cache file.
	CachePath string `json:"cache_path" env:"BLITZWARE_CACHE_PATH"`

	// Addr is the listen address of the dev server (ip:port).
	Addr string `json:"addr" env:"BLITZWARE_ADDR"`

	// LogLevel sets the zap level: debug, info, warn, error.
	LogLevel string `json:"log_level" env:"BLITZWARE_LOG_LEVEL"`

	// Config is the path to the JSON config file.
	Config string `json:"-" env:"BLITZWARE_CONFIG"`
}

// options holds the current configuration values.
var options = &Options{}

// init initializes command-line flags and sets default values.
func init() {
	flag.StringVar(&options.ServerURL, "url", "http://localhost:8080", "backend base URL")
	flag.StringVar(&options.CachePath, "cache", "blitzware.db", "path to the local cache file")
	flag.StringVar(&options.Addr, "a", "localhost:8080", "dev server listen address (ip:port)")
	flag.StringVar(&options.LogLevel, "log", "info", "log level: debug, info, warn, error")
	flag.StringVar(&options.Config, "config", "", "path to config file")
	flag.StringVar(&options.Config, "c", "", "path to config file (shorthand)")
}

// Parse parses the command-line flags, the optional config file, and
// environment variables, in that order of increasing precedence. It
// returns a pointer to the Options struct containing the resulting
// configuration values.
func Parse() *Options {
	flag.Parse()

	if options.Config != "" {
		if _, err := os.Stat(options.Config); err == nil {
			data, err := os.ReadFile(options.Config)
			if err != nil {
				log.Fatalf("error while reading config file: %v", err)
			}
			if err := json.Unmarshal(data, options); err != nil {
				log.Fatalf("error while parsing config file: %v", err)
			}
		}
	}

	// Environment variables override flags and file values.
	if err := env.Parse(options); err != nil {
		log.Fatalf("error while parsing environment: %v", err)
	}

	return options
}
