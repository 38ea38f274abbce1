package services

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/shopspring/decimal"

	"github.com/stakescan/stake-scanner/internal/clients/chainclient"
	"github.com/stakescan/stake-scanner/internal/db"
)

func tokens(n int64) *big.Int {
	return new(big.Int).Mul(big.NewInt(n), new(big.Int).Exp(big.NewInt(10), big.NewInt(18), nil))
}

// fakeStakingClient serves stake records from memory and tracks how many
// calls run at the same time.
type fakeStakingClient struct {
	mu          sync.Mutex
	records     map[string][]chainclient.RawStakeRecord
	countErrs   map[string]error
	recordErrs  map[string]map[uint64]error
	latency     time.Duration
	inFlight    int
	maxInFlight int
	countCalls  int
	balance     decimal.Decimal
}

func newFakeStakingClient() *fakeStakingClient {
	return &fakeStakingClient{
		records:    make(map[string][]chainclient.RawStakeRecord),
		countErrs:  make(map[string]error),
		recordErrs: make(map[string]map[uint64]error),
	}
}

func (f *fakeStakingClient) add(address string, records ...chainclient.RawStakeRecord) {
	f.records[address] = append(f.records[address], records...)
}

func (f *fakeStakingClient) failRecord(address string, index uint64, err error) {
	if f.recordErrs[address] == nil {
		f.recordErrs[address] = make(map[uint64]error)
	}
	f.recordErrs[address][index] = err
}

func (f *fakeStakingClient) enter() {
	f.mu.Lock()
	f.inFlight++
	f.maxInFlight = max(f.maxInFlight, f.inFlight)
	f.mu.Unlock()
}

func (f *fakeStakingClient) leave() {
	f.mu.Lock()
	f.inFlight--
	f.mu.Unlock()
}

func (f *fakeStakingClient) currentInFlight() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.inFlight
}

func (f *fakeStakingClient) GetStakeCount(ctx context.Context, address string) (uint64, error) {
	f.enter()
	defer f.leave()

	f.mu.Lock()
	f.countCalls++
	f.mu.Unlock()

	if f.latency > 0 {
		select {
		case <-time.After(f.latency):
		case <-ctx.Done():
			return 0, ctx.Err()
		}
	}

	if err := f.countErrs[address]; err != nil {
		return 0, err
	}
	return uint64(len(f.records[address])), nil
}

func (f *fakeStakingClient) GetStakeRecord(ctx context.Context, address string, index uint64) (*chainclient.RawStakeRecord, error) {
	f.enter()
	defer f.leave()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := f.recordErrs[address][index]; err != nil {
		return nil, err
	}
	records := f.records[address]
	if index >= uint64(len(records)) {
		return nil, fmt.Errorf("index %d out of range", index)
	}
	record := records[index]
	return &record, nil
}

func (f *fakeStakingClient) GetPoolBalance(context.Context) decimal.Decimal {
	return f.balance
}

// fakeNode is a chain endpoint that only answers the health probe
type fakeNode struct {
	probeErr error
	closed   bool
}

func (n *fakeNode) BlockNumber(context.Context) (uint64, error) {
	return 1, n.probeErr
}

func (n *fakeNode) CallContract(context.Context, ethereum.CallMsg, *big.Int) ([]byte, error) {
	return nil, errors.New("not implemented")
}

func (n *fakeNode) Close() {
	n.closed = true
}

type memoryKV struct {
	mu     sync.Mutex
	values map[string][]byte
	setErr error
}

func newMemoryKV() *memoryKV {
	return &memoryKV{values: make(map[string][]byte)}
}

func (m *memoryKV) Ping(context.Context) error { return nil }

func (m *memoryKV) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, &db.NotFoundError{Key: key, Message: "not found"}
	}
	return v, nil
}

func (m *memoryKV) Set(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.setErr != nil {
		return m.setErr
	}
	m.values[key] = value
	return nil
}
