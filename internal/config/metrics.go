package config

import (
	"fmt"
	"net"
	"strconv"
)

// MetricsConfig defines the configuration for metrics server.
type MetricsConfig struct {
	// IP of the prometheus server.
	Host string `mapstructure:"host"`
	// Port of the prometheus server.
	Port int `mapstructure:"port"`
}

func (cfg *MetricsConfig) Validate() error {
	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("metrics server port must be between 0 and 65535 (inclusive)")
	}

	ip := net.ParseIP(cfg.Host)
	if ip == nil {
		return fmt.Errorf("invalid metrics server host: %v", cfg.Host)
	}

	return nil
}

func (cfg *MetricsConfig) Address() (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}

	host := cfg.Host
	port := strconv.Itoa(cfg.Port)
	return net.JoinHostPort(host, port), nil
}

func (cfg *MetricsConfig) GetMetricsPort() int {
	return cfg.Port
}
