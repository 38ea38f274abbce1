package types

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StakeIndex is the lock-duration tier of a stake record.
type StakeIndex uint8

const (
	StakeIndex1d StakeIndex = iota
	StakeIndex15d
	StakeIndex30d

	NumStakeIndexes = 3
)

// lock length in seconds per tier
var stakeDurations = [NumStakeIndexes]int64{
	StakeIndex1d:  86400,
	StakeIndex15d: 1296000,
	StakeIndex30d: 2592000,
}

func (i StakeIndex) IsValid() bool {
	return int(i) < NumStakeIndexes
}

// Duration returns the lock length of the tier in seconds.
// It panics on an invalid tier, callers validate with IsValid first.
func (i StakeIndex) Duration() int64 {
	return stakeDurations[i]
}

func (i StakeIndex) String() string {
	switch i {
	case StakeIndex1d:
		return "1d"
	case StakeIndex15d:
		return "15d"
	case StakeIndex30d:
		return "30d"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(i))
	}
}

// StakeRecord is a single deposit made by an address
type StakeRecord struct {
	Address    string          `json:"address"`
	Amount     decimal.Decimal `json:"amount"`
	StakeTime  int64           `json:"stakeTime"`
	StakeIndex StakeIndex      `json:"stakeIndex"`
	IsRedeemed bool            `json:"isRedeemed"`
}

// ActiveRecord is an unredeemed StakeRecord with its unlock schedule
// evaluated against the scan start time.
type ActiveRecord struct {
	StakeRecord
	UnlockTime    int64 `json:"unlockTime"`
	TimeRemaining int64 `json:"timeRemaining"`
}

func NewActiveRecord(record StakeRecord, now int64) ActiveRecord {
	unlockTime := record.StakeTime + record.StakeIndex.Duration()
	return ActiveRecord{
		StakeRecord:   record,
		UnlockTime:    unlockTime,
		TimeRemaining: unlockTime - now,
	}
}

// AddressResult is the outcome of scanning one address.
type AddressResult struct {
	Address string
	Success bool
	Error   string
	All     []StakeRecord
	Active  []ActiveRecord
}
