package testutil

import (
	"fmt"

	"github.com/brianvoe/gofakeit/v7"
)

// RandomAlphaNum returns a random string of letters and digits.
// length must be positive.
func RandomAlphaNum(length int) (string, error) {
	if length <= 0 {
		return "", fmt.Errorf("length must be greater than 0")
	}

	return gofakeit.Password(true, true, true, false, false, length), nil
}

// RandomAddress returns a random 0x-prefixed 20-byte hex address
func RandomAddress() string {
	return gofakeit.HexUint(160)
}
