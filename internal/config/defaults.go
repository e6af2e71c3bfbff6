package config

import "time"

const defaultPort = 8080

var defaultShipper = Shipper{
	APIKey:      "",
	Sandbox:     true,
	BaseURL:     "",
	HTTPTimeout: 15 * time.Second,
}

// DefaultPort returns the default port.
func DefaultPort() int {
	return defaultPort
}

// DefaultShipper returns the default upstream provider settings.
func DefaultShipper() Shipper {
	return defaultShipper
}
