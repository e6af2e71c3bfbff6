package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
)

// Shipper stores upstream provider settings.
type Shipper struct {
	APIKey      string
	Sandbox     bool
	BaseURL     string // optional override; empty means derive from Sandbox
	HTTPTimeout time.Duration
}

// Config stores HTTP service settings.
type Config struct {
	Port    int
	Shipper Shipper
}

// Load reads configuration in order: .env (if present) → environment → flags.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("warning: .env not loaded: %v", err)
	}

	port := DefaultPort()
	if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			port = p
		}
	}

	sh := DefaultShipper()
	if v := os.Getenv("SHIPPER_API_KEY"); v != "" {
		sh.APIKey = v
	}
	if v := os.Getenv("SHIPPER_SANDBOX"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			sh.Sandbox = b
		}
	}
	if v := os.Getenv("SHIPPER_BASE_URL"); v != "" {
		sh.BaseURL = v
	}
	if v := os.Getenv("SHIPPER_HTTP_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			sh.HTTPTimeout = d
		}
	}

	pflag.IntVarP(&port, "port", "p", port, "port to listen on")
	pflag.StringVar(&sh.APIKey, "shipper-api-key", sh.APIKey, "shipper provider API key")
	pflag.BoolVar(&sh.Sandbox, "shipper-sandbox", sh.Sandbox, "use the sandbox provider endpoint")
	pflag.StringVar(&sh.BaseURL, "shipper-base-url", sh.BaseURL, "override the provider base URL")
	pflag.Parse()

	if port <= 0 || port > 65535 {
		return nil, fmt.Errorf("invalid port: %d", port)
	}
	if sh.HTTPTimeout <= 0 {
		return nil, fmt.Errorf("invalid shipper http timeout: %s", sh.HTTPTimeout)
	}
	return &Config{Port: port, Shipper: sh}, nil
}
