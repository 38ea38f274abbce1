package addrsource

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/stakescan/stake-scanner/testutil"
)

const (
	addrA = "0x1111111111111111111111111111111111111111"
	addrB = "0xa2f464a2462aed49b9b31eb8861bc6b0bbb0483f"
)

func TestIsValidAddress(t *testing.T) {
	assert.True(t, IsValidAddress(addrA))
	assert.True(t, IsValidAddress("0x72212F35aC448FE7763aA1BFdb360193Fa098E52"))
	assert.False(t, IsValidAddress("72212F35aC448FE7763aA1BFdb360193Fa098E52"))
	assert.False(t, IsValidAddress("0x72212F35aC448FE7763aA1BFdb360193Fa098E5"))
	assert.False(t, IsValidAddress("0x72212F35aC448FE7763aA1BFdb360193Fa098EZZ"))
	assert.False(t, IsValidAddress(""))

	for range 20 {
		assert.True(t, IsValidAddress(testutil.RandomAddress()))
	}
}

func TestFromCSV(t *testing.T) {
	input := strings.Join([]string{
		"address,label",
		addrA + ",first",
		"",
		`"` + addrB + `",quoted`,
		"not-an-address,x",
		strings.ToUpper(addrA[:2]) + strings.ToUpper(addrA[2:]) + ",dup by case",
		"  " + addrB + "  ,dup with spaces",
	}, "\n")

	addresses, err := FromCSV(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []string{addrA, addrB}, addresses)
}

func TestFromCSV_HeaderOnly(t *testing.T) {
	addresses, err := FromCSV(strings.NewReader(addrA + "\n"))
	require.NoError(t, err)
	assert.Empty(t, addresses)
}

func writeXLSX(t *testing.T, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, value := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, cell, value))
		}
	}

	path := filepath.Join(t.TempDir(), "addresses.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestFromFile(t *testing.T) {
	t.Run("xlsx", func(t *testing.T) {
		path := writeXLSX(t, [][]string{
			{"Address", "Note"},
			{addrB, "pool"},
			{"garbage", ""},
			{addrA, ""},
			{addrB, "again"},
		})

		addresses, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{addrB, addrA}, addresses)
	})

	t.Run("txt", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addresses.txt")
		require.NoError(t, os.WriteFile(path, []byte("header\n"+addrA+"\n"), 0o600))

		addresses, err := FromFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{addrA}, addresses)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := FromFile(filepath.Join(t.TempDir(), "missing.csv"))
		require.Error(t, err)
	})

	t.Run("not a spreadsheet", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "addresses.xlsx")
		require.NoError(t, os.WriteFile(path, []byte("plain text"), 0o600))

		_, err := FromFile(path)
		require.Error(t, err)
	})
}
