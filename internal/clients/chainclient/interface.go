package chainclient

import (
	"context"
	"math/big"

	"github.com/ethereum/go-ethereum"
	"github.com/shopspring/decimal"
)

// StakingInterface is the read surface of the staking contract used by
// the scanner.
type StakingInterface interface {
	GetStakeCount(ctx context.Context, address string) (uint64, error)
	GetStakeRecord(ctx context.Context, address string, index uint64) (*RawStakeRecord, error)
	// GetPoolBalance never fails, an unreadable balance is reported as zero
	GetPoolBalance(ctx context.Context) decimal.Decimal
}

// Caller is the minimal node API the client needs. *ethclient.Client
// satisfies it.
type Caller interface {
	BlockNumber(ctx context.Context) (uint64, error)
	CallContract(ctx context.Context, msg ethereum.CallMsg, blockNumber *big.Int) ([]byte, error)
	Close()
}

// RawStakeRecord is a userStakeRecord result as returned by the contract
type RawStakeRecord struct {
	StakeTime  uint64
	Amount     *big.Int
	IsRedeemed bool
	StakeIndex uint8
}
