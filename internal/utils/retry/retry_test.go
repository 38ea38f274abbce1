package retry

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDo(t *testing.T) {
	ctx := t.Context()

	t.Run("first call succeeds", func(t *testing.T) {
		calls := 0
		v, err := Do(ctx, "test", Policy{MaxAttempts: 3}, func(context.Context) (int, error) {
			calls++
			return 42, nil
		})
		require.NoError(t, err)
		assert.Equal(t, 42, v)
		assert.Equal(t, 1, calls)
	})

	t.Run("fails k times then succeeds", func(t *testing.T) {
		for _, k := range []int{1, 2, 3} {
			t.Run(fmt.Sprintf("k=%d", k), func(t *testing.T) {
				calls := 0
				v, err := Do(ctx, "test", Policy{MaxAttempts: 3}, func(context.Context) (string, error) {
					calls++
					if calls <= k {
						return "", errors.New("boom")
					}
					return "ok", nil
				})
				require.NoError(t, err)
				assert.Equal(t, "ok", v)
				assert.Equal(t, k+1, calls)
			})
		}
	})

	t.Run("always failing returns last error", func(t *testing.T) {
		calls := 0
		v, err := Do(ctx, "test", Policy{MaxAttempts: 2}, func(context.Context) (int, error) {
			calls++
			return 7, fmt.Errorf("failure %d", calls)
		})
		require.Error(t, err)
		assert.Equal(t, "failure 3", err.Error())
		assert.Zero(t, v)
		assert.Equal(t, 3, calls)
	})

	t.Run("no retries", func(t *testing.T) {
		calls := 0
		_, err := Do(ctx, "test", Policy{}, func(context.Context) (int, error) {
			calls++
			return 0, errors.New("boom")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("cancelled context stops waiting", func(t *testing.T) {
		ctx, cancel := context.WithCancel(ctx)
		calls := 0
		start := time.Now()
		_, err := Do(ctx, "test", Policy{MaxAttempts: 5, BaseDelay: time.Hour}, func(context.Context) (int, error) {
			calls++
			cancel()
			return 0, errors.New("boom")
		})
		require.Error(t, err)
		assert.Equal(t, 1, calls)
		assert.Less(t, time.Since(start), time.Minute)
	})
}

func TestLinearDelay(t *testing.T) {
	delay := LinearDelay(100 * time.Millisecond)
	assert.Equal(t, 100*time.Millisecond, delay(0, nil, nil))
	assert.Equal(t, 200*time.Millisecond, delay(1, nil, nil))
	assert.Equal(t, 500*time.Millisecond, delay(4, nil, nil))
}
