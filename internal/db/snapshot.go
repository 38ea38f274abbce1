package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stakescan/stake-scanner/internal/types"
)

const (
	ScanResultKey  = "stake_data"
	AddressListKey = "address_list"
)

// SaveScanResult overwrites the stored snapshot with result.
func SaveScanResult(ctx context.Context, kv DbInterface, result *types.ScanResult) error {
	return setJSON(ctx, kv, ScanResultKey, result)
}

func LoadScanResult(ctx context.Context, kv DbInterface) (*types.ScanResult, error) {
	var result types.ScanResult
	if err := getJSON(ctx, kv, ScanResultKey, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func SaveAddressList(ctx context.Context, kv DbInterface, addresses []string) error {
	return setJSON(ctx, kv, AddressListKey, addresses)
}

func LoadAddressList(ctx context.Context, kv DbInterface) ([]string, error) {
	var addresses []string
	if err := getJSON(ctx, kv, AddressListKey, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

func setJSON(ctx context.Context, kv DbInterface, key string, value any) error {
	blob, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", key, err)
	}

	if err := kv.Set(ctx, key, blob); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func getJSON(ctx context.Context, kv DbInterface, key string, value any) error {
	blob, err := kv.Get(ctx, key)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(blob, value); err != nil {
		return fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return nil
}
