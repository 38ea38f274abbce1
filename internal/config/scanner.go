package config

import (
	"errors"
	"time"
)

const (
	defaultBatchSize       = 20
	defaultInterBatchDelay = 200 * time.Millisecond
	defaultScanTimeout     = 10 * time.Minute
	defaultMaxAddresses    = 50000
)

// ScannerConfig is handed to the batch scanner at construction time.
// Tests use a tiny batch size and a zero delay.
type ScannerConfig struct {
	BatchSize       int           `mapstructure:"batch-size"`
	InterBatchDelay time.Duration `mapstructure:"inter-batch-delay"`
	// ScanTimeout is the wall-clock budget of a single scan, zero means unbounded
	ScanTimeout  time.Duration `mapstructure:"scan-timeout"`
	MaxAddresses int           `mapstructure:"max-addresses"`
}

func DefaultScannerConfig() *ScannerConfig {
	return &ScannerConfig{
		BatchSize:       defaultBatchSize,
		InterBatchDelay: defaultInterBatchDelay,
		ScanTimeout:     defaultScanTimeout,
		MaxAddresses:    defaultMaxAddresses,
	}
}

func (cfg *ScannerConfig) Validate() error {
	if cfg.BatchSize <= 0 {
		return errors.New("batch-size must be positive")
	}

	if cfg.InterBatchDelay < 0 {
		return errors.New("inter-batch-delay must not be negative")
	}

	if cfg.ScanTimeout < 0 {
		return errors.New("scan-timeout must not be negative")
	}

	if cfg.MaxAddresses <= 0 {
		cfg.MaxAddresses = defaultMaxAddresses
	}

	return nil
}
