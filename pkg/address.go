package pkg

import (
	"fmt"
	"regexp"
)

var evmAddressPattern = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

// ValidateEVMAddress checks that address is 0x followed by 40 hex digits.
// Checksum casing is not verified.
func ValidateEVMAddress(address string) error {
	if !evmAddressPattern.MatchString(address) {
		return fmt.Errorf("invalid evm address %q", address)
	}
	return nil
}
