package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPollerConfig_Validate(t *testing.T) {
	t.Run("interval set", func(t *testing.T) {
		cfg := &PollerConfig{ScanPollingInterval: 3 * time.Minute}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, 3*time.Minute, cfg.ScanPollingInterval)
	})

	t.Run("interval not set - should use default", func(t *testing.T) {
		cfg := &PollerConfig{}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultScanPollingInterval, cfg.ScanPollingInterval)
	})

	t.Run("interval negative - should use default", func(t *testing.T) {
		cfg := &PollerConfig{ScanPollingInterval: -1 * time.Minute}
		require.NoError(t, cfg.Validate())
		assert.Equal(t, defaultScanPollingInterval, cfg.ScanPollingInterval)
	})
}
