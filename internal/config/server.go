package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Host == "" {
		return errors.New("missing server host")
	}

	if cfg.Port < 0 || cfg.Port > 65535 {
		return fmt.Errorf("server port must be between 0 and 65535")
	}

	if cfg.WriteTimeout <= 0 {
		return errors.New("write timeout must be positive")
	}

	if cfg.ReadTimeout <= 0 {
		return errors.New("read timeout must be positive")
	}

	if cfg.IdleTimeout <= 0 {
		return errors.New("idle timeout must be positive")
	}

	return nil
}

func (cfg *ServerConfig) Addr() string {
	return net.JoinHostPort(cfg.Host, fmt.Sprintf("%d", cfg.Port))
}
