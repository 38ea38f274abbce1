package pkg

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetenv(t *testing.T) {
	const (
		key          = "STAKE_SCANNER_TEST_KEY"
		defaultValue = "default"
	)

	t.Run("unset key falls back to default", func(t *testing.T) {
		assert.Equal(t, defaultValue, Getenv("STAKE_SCANNER_UNSET_KEY", defaultValue))
	})
	t.Run("empty value is kept", func(t *testing.T) {
		t.Setenv(key, "")
		assert.Empty(t, Getenv(key, defaultValue))
	})
	t.Run("set value", func(t *testing.T) {
		t.Setenv(key, "7.0.12")
		assert.Equal(t, "7.0.12", Getenv(key, defaultValue))
	})
}
