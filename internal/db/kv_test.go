//go:build integration

package db_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stakescan/stake-scanner/internal/db"
	"github.com/stakescan/stake-scanner/internal/types"
	"github.com/stakescan/stake-scanner/testutil"
)

func TestKV(t *testing.T) {
	ctx := t.Context()

	t.Run("missing key", func(t *testing.T) {
		_, err := testDB.Get(ctx, "missing")
		require.Error(t, err)
		assert.True(t, db.IsNotFoundError(err))
	})

	t.Run("set then get", func(t *testing.T) {
		require.NoError(t, testDB.Set(ctx, "key", []byte("first")))
		value, err := testDB.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("first"), value)
	})

	t.Run("last write wins", func(t *testing.T) {
		require.NoError(t, testDB.Set(ctx, "key", []byte("first")))
		require.NoError(t, testDB.Set(ctx, "key", []byte("second")))
		value, err := testDB.Get(ctx, "key")
		require.NoError(t, err)
		assert.Equal(t, []byte("second"), value)
	})

	t.Run("snapshot through metrics wrapper", func(t *testing.T) {
		kv := db.NewDbWithMetrics(testDB)
		result := &types.ScanResult{TotalAddresses: 3, SuccessCount: 2, FailedAddresses: []string{"0xabc"}}
		require.NoError(t, db.SaveScanResult(ctx, kv, result))

		loaded, err := db.LoadScanResult(ctx, kv)
		require.NoError(t, err)
		assert.Equal(t, 3, loaded.TotalAddresses)
		assert.Equal(t, []string{"0xabc"}, loaded.FailedAddresses)
	})

	t.Run("address list", func(t *testing.T) {
		addresses := []string{testutil.RandomAddress(), testutil.RandomAddress()}
		require.NoError(t, db.SaveAddressList(ctx, testDB, addresses))

		loaded, err := db.LoadAddressList(ctx, testDB)
		require.NoError(t, err)
		assert.Equal(t, addresses, loaded)
	})
}
