package config

import (
	"time"
)

const defaultScanPollingInterval = 1 * time.Hour

type PollerConfig struct {
	// ScanPollingInterval is how often the stored address list is rescanned
	ScanPollingInterval time.Duration `mapstructure:"scan-polling-interval"`
}

func (cfg *PollerConfig) Validate() error {
	if cfg.ScanPollingInterval <= 0 {
		cfg.ScanPollingInterval = defaultScanPollingInterval
	}

	return nil
}
