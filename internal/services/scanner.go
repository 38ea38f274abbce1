package services

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/stakescan/stake-scanner/internal/clients/chainclient"
	"github.com/stakescan/stake-scanner/internal/config"
	"github.com/stakescan/stake-scanner/internal/observability/metrics"
	"github.com/stakescan/stake-scanner/internal/types"
)

// BatchHandler receives the results of one fully joined batch, in the
// order of the batch's addresses.
type BatchHandler func(results ...types.AddressResult)

// BatchScanner reads the stake records of many addresses. Addresses are
// split into consecutive batches that run one after another; the
// addresses of a batch are queried concurrently.
type BatchScanner struct {
	client chainclient.StakingInterface
	cfg    *config.ScannerConfig
}

func NewBatchScanner(client chainclient.StakingInterface, cfg *config.ScannerConfig) *BatchScanner {
	return &BatchScanner{
		client: client,
		cfg:    cfg,
	}
}

// Scan queries every address and hands each joined batch to handle. It
// returns how many leading addresses were handed over. When ctx is done
// no further batch is started and the batch it interrupted is dropped,
// in which case ctx's error is returned.
func (s *BatchScanner) Scan(
	ctx context.Context, addresses []string, now int64, handle BatchHandler,
) (int, error) {
	log := log.Ctx(ctx)
	batchSize := max(s.cfg.BatchSize, 1)
	batches := (len(addresses) + batchSize - 1) / batchSize

	scanned := 0
	for start := 0; start < len(addresses); start += batchSize {
		if err := ctx.Err(); err != nil {
			return scanned, err
		}

		end := min(start+batchSize, len(addresses))
		batchNum := start/batchSize + 1
		results := s.scanBatch(ctx, addresses[start:end], now)

		// calls cut off by the deadline would show up as failed addresses
		if err := ctx.Err(); err != nil {
			log.Warn().
				Int("batch", batchNum).
				Int("batches", batches).
				Msg("scan interrupted, dropping unfinished batch")
			return scanned, err
		}

		handle(results...)
		scanned = end

		log.Debug().
			Int("batch", batchNum).
			Int("batches", batches).
			Int("scanned", scanned).
			Msg("batch scanned")

		if end < len(addresses) && s.cfg.InterBatchDelay > 0 {
			select {
			case <-time.After(s.cfg.InterBatchDelay):
			case <-ctx.Done():
				return scanned, ctx.Err()
			}
		}
	}

	return scanned, nil
}

// ScanAll scans every address and returns the results in input order.
func (s *BatchScanner) ScanAll(ctx context.Context, addresses []string, now int64) ([]types.AddressResult, error) {
	all := make([]types.AddressResult, 0, len(addresses))
	_, err := s.Scan(ctx, addresses, now, func(results ...types.AddressResult) {
		all = append(all, results...)
	})
	return all, err
}

func (s *BatchScanner) scanBatch(ctx context.Context, batch []string, now int64) []types.AddressResult {
	results := make([]types.AddressResult, len(batch))

	p := pool.New().WithMaxGoroutines(len(batch))
	for i, address := range batch {
		// every worker writes its own slot only
		p.Go(func() {
			results[i] = s.scanAddress(ctx, address, now)
		})
	}
	p.Wait()

	return results
}

func (s *BatchScanner) scanAddress(ctx context.Context, address string, now int64) types.AddressResult {
	log := log.Ctx(ctx).With().Str("address", address).Logger()
	result := types.AddressResult{Address: address}

	count, err := s.client.GetStakeCount(ctx, address)
	if err != nil {
		log.Warn().Err(err).Msg("failed to query address")
		result.Error = err.Error()
		metrics.RecordScannedAddress(true)
		return result
	}

	for index := uint64(0); index < count; index++ {
		raw, err := s.client.GetStakeRecord(ctx, address, index)
		if err != nil {
			log.Warn().Err(err).Uint64("index", index).Msg("failed to read stake record, skipping")
			metrics.IncSkippedRecords()
			continue
		}

		record, err := toStakeRecord(address, raw)
		if err != nil {
			log.Warn().Err(err).Uint64("index", index).Msg("invalid stake record, skipping")
			metrics.IncSkippedRecords()
			continue
		}

		result.All = append(result.All, record)
		if !record.IsRedeemed {
			result.Active = append(result.Active, types.NewActiveRecord(record, now))
		}
	}

	result.Success = true
	metrics.RecordScannedAddress(false)
	return result
}

func toStakeRecord(address string, raw *chainclient.RawStakeRecord) (types.StakeRecord, error) {
	stakeIndex := types.StakeIndex(raw.StakeIndex)
	if !stakeIndex.IsValid() {
		return types.StakeRecord{}, fmt.Errorf("unknown stake index %d", raw.StakeIndex)
	}
	if raw.StakeTime > math.MaxInt64 {
		return types.StakeRecord{}, fmt.Errorf("stake time %d out of range", raw.StakeTime)
	}
	if raw.Amount == nil || raw.Amount.Sign() < 0 {
		return types.StakeRecord{}, fmt.Errorf("invalid amount %v", raw.Amount)
	}

	return types.StakeRecord{
		Address:    address,
		Amount:     chainclient.ToAmount(raw.Amount),
		StakeTime:  int64(raw.StakeTime),
		StakeIndex: stakeIndex,
		IsRedeemed: raw.IsRedeemed,
	}, nil
}
