package config

import (
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	defaultProbeTimeout  = 5 * time.Second
	defaultMaxRetryTimes = 3
	defaultRetryInterval = 1 * time.Second
)

// ChainConfig defines how the staking contract is reached. Endpoints are
// tried in order, the first one answering the health probe is used for
// the whole scan.
type ChainConfig struct {
	Endpoints       []string      `mapstructure:"endpoints"`
	StakingContract string        `mapstructure:"staking-contract"`
	TokenContract   string        `mapstructure:"token-contract"`
	LPPoolAddress   string        `mapstructure:"lp-pool-address"`
	ProbeTimeout    time.Duration `mapstructure:"probe-timeout"`
	// MaxRetryTimes is the number of retries after the first failed call
	MaxRetryTimes uint          `mapstructure:"max-retry-times"`
	RetryInterval time.Duration `mapstructure:"retry-interval"`
	// RequestsPerSecond throttles contract reads, zero disables throttling
	RequestsPerSecond float64 `mapstructure:"requests-per-second"`
}

func DefaultChainConfig() *ChainConfig {
	return &ChainConfig{
		ProbeTimeout:  defaultProbeTimeout,
		MaxRetryTimes: defaultMaxRetryTimes,
		RetryInterval: defaultRetryInterval,
	}
}

func (cfg *ChainConfig) Validate() error {
	if len(cfg.Endpoints) == 0 {
		return fmt.Errorf("at least one chain endpoint is required")
	}
	for i, endpoint := range cfg.Endpoints {
		if endpoint == "" {
			return fmt.Errorf("chain endpoint %d is empty", i)
		}
	}

	if !common.IsHexAddress(cfg.StakingContract) {
		return fmt.Errorf("invalid staking contract address %q", cfg.StakingContract)
	}
	// token contract and lp pool are only needed for the informational
	// pool balance, both or neither must be set
	if (cfg.TokenContract == "") != (cfg.LPPoolAddress == "") {
		return fmt.Errorf("token-contract and lp-pool-address must be set together")
	}
	if cfg.TokenContract != "" && !common.IsHexAddress(cfg.TokenContract) {
		return fmt.Errorf("invalid token contract address %q", cfg.TokenContract)
	}
	if cfg.LPPoolAddress != "" && !common.IsHexAddress(cfg.LPPoolAddress) {
		return fmt.Errorf("invalid lp pool address %q", cfg.LPPoolAddress)
	}

	if cfg.ProbeTimeout <= 0 {
		return fmt.Errorf("probe timeout should be positive")
	}
	if cfg.RetryInterval < 0 {
		return fmt.Errorf("retry interval should not be negative")
	}
	if cfg.RequestsPerSecond < 0 {
		return fmt.Errorf("requests per second should not be negative")
	}

	return nil
}

// HasLPPool reports whether the pool balance can be queried
func (cfg *ChainConfig) HasLPPool() bool {
	return cfg.TokenContract != "" && cfg.LPPoolAddress != ""
}
