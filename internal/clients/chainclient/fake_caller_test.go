package chainclient

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"sync"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
)

// fakeCaller answers eth_calls from in-memory stake records.
type fakeCaller struct {
	mu          sync.Mutex
	height      uint64
	heightErr   error
	counts      map[common.Address]uint64
	records     map[common.Address][]RawStakeRecord
	balance     *big.Int
	failures    map[string]int // method -> remaining failures
	calls       map[string]int
	probeCalls  int
	closed      bool
	rawResponse []byte
}

func newFakeCaller() *fakeCaller {
	return &fakeCaller{
		counts:   make(map[common.Address]uint64),
		records:  make(map[common.Address][]RawStakeRecord),
		failures: make(map[string]int),
		calls:    make(map[string]int),
	}
}

func (f *fakeCaller) addRecords(address string, records ...RawStakeRecord) {
	addr := common.HexToAddress(address)
	f.records[addr] = append(f.records[addr], records...)
	f.counts[addr] = uint64(len(f.records[addr]))
}

func (f *fakeCaller) BlockNumber(context.Context) (uint64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.probeCalls++
	return f.height, f.heightErr
}

func (f *fakeCaller) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

func (f *fakeCaller) CallContract(_ context.Context, msg ethereum.CallMsg, _ *big.Int) ([]byte, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(msg.Data) < 4 {
		return nil, errors.New("short call data")
	}

	contractABI := stakingABI
	method, err := contractABI.MethodById(msg.Data[:4])
	if err != nil {
		contractABI = erc20ABI
		method, err = contractABI.MethodById(msg.Data[:4])
		if err != nil {
			return nil, err
		}
	}

	f.calls[method.Name]++
	if f.failures[method.Name] > 0 {
		f.failures[method.Name]--
		return nil, fmt.Errorf("%s: connection reset", method.Name)
	}
	if f.rawResponse != nil {
		return f.rawResponse, nil
	}

	args, err := method.Inputs.Unpack(msg.Data[4:])
	if err != nil {
		return nil, err
	}

	switch method.Name {
	case methodStakeCount:
		user := args[0].(common.Address)
		return method.Outputs.Pack(new(big.Int).SetUint64(f.counts[user]))
	case methodUserStakeRecord:
		user := args[0].(common.Address)
		index := args[1].(*big.Int).Uint64()
		records := f.records[user]
		if index >= uint64(len(records)) {
			return nil, errors.New("execution reverted")
		}
		r := records[index]
		return method.Outputs.Pack(new(big.Int).SetUint64(r.StakeTime), r.Amount, r.IsRedeemed, r.StakeIndex)
	case methodBalanceOf:
		if f.balance == nil {
			return nil, errors.New("execution reverted")
		}
		return method.Outputs.Pack(f.balance)
	}

	return nil, fmt.Errorf("unexpected method %s", method.Name)
}

func (f *fakeCaller) callCount(method string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[method]
}
