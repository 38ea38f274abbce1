package chainclient

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/stakescan/stake-scanner/internal/observability/metrics"
)

type stakingClientWithMetrics struct {
	client StakingInterface
}

func NewStakingClientWithMetrics(client StakingInterface) *stakingClientWithMetrics {
	return &stakingClientWithMetrics{client: client}
}

func (s *stakingClientWithMetrics) GetStakeCount(ctx context.Context, address string) (uint64, error) {
	return runStakingClientMethodWithMetrics("GetStakeCount", func() (uint64, error) {
		return s.client.GetStakeCount(ctx, address)
	})
}

func (s *stakingClientWithMetrics) GetStakeRecord(ctx context.Context, address string, index uint64) (*RawStakeRecord, error) {
	return runStakingClientMethodWithMetrics("GetStakeRecord", func() (*RawStakeRecord, error) {
		return s.client.GetStakeRecord(ctx, address, index)
	})
}

func (s *stakingClientWithMetrics) GetPoolBalance(ctx context.Context) decimal.Decimal {
	// failures are swallowed by the client, only latency is recorded
	balance, _ := runStakingClientMethodWithMetrics("GetPoolBalance", func() (decimal.Decimal, error) {
		return s.client.GetPoolBalance(ctx), nil
	})
	return balance
}

func runStakingClientMethodWithMetrics[T any](method string, f func() (T, error)) (T, error) {
	startTime := time.Now()
	v, err := f()
	duration := time.Since(startTime)

	metrics.RecordChainClientLatency(duration, method, err != nil)
	return v, err
}
