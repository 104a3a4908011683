package config

import (
	"fmt"
	"time"
)

const (
	defaultStatsPollingInterval = 5 * time.Minute
	minStatsPollingInterval     = time.Second
)

type PollerConfig struct {
	StatsPollingInterval time.Duration `mapstructure:"stats-polling-interval"`
	// SnapshotOnStart takes the first pool stats snapshot at startup instead
	// of one interval later.
	SnapshotOnStart bool `mapstructure:"snapshot-on-start"`
}

func (cfg *PollerConfig) Validate() error {
	switch {
	case cfg.StatsPollingInterval == 0:
		cfg.StatsPollingInterval = defaultStatsPollingInterval
	case cfg.StatsPollingInterval < minStatsPollingInterval:
		return fmt.Errorf("stats-polling-interval must be at least %s, got %s",
			minStatsPollingInterval, cfg.StatsPollingInterval)
	}

	return nil
}
