package types

import (
	"time"

	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

// DateOf returns the UTC calendar date of a unix timestamp as YYYY-MM-DD
func DateOf(unixSeconds int64) string {
	return time.Unix(unixSeconds, 0).UTC().Format(dateLayout)
}

// DailyBucket aggregates every record staked on one UTC date.
type DailyBucket struct {
	Date     string                           `json:"date"`
	NewStake decimal.Decimal                  `json:"newStake"`
	ByPool   [NumStakeIndexes]decimal.Decimal `json:"byPool"`
	Count    [NumStakeIndexes]uint64          `json:"count"`
}

type Stats struct {
	TotalStaked    decimal.Decimal `json:"totalStaked"`
	TotalStaked1d  decimal.Decimal `json:"totalStaked1d"`
	TotalStaked15d decimal.Decimal `json:"totalStaked15d"`
	TotalStaked30d decimal.Decimal `json:"totalStaked30d"`
	Count1d        uint64          `json:"count1d"`
	Count15d       uint64          `json:"count15d"`
	Count30d       uint64          `json:"count30d"`
	Unlock2d       decimal.Decimal `json:"unlock2d"`
	Unlock7d       decimal.Decimal `json:"unlock7d"`
	Unlock15d      decimal.Decimal `json:"unlock15d"`
}

// ScanResult is the snapshot produced by one scan. It is never merged
// with a previous snapshot, each scan overwrites the stored one.
type ScanResult struct {
	Stats           Stats          `json:"stats"`
	ActiveRecords   []ActiveRecord `json:"activeRecords"`
	AllRecords      []StakeRecord  `json:"allRecords"`
	DailyStats      []DailyBucket  `json:"dailyStats"`
	FailedAddresses []string       `json:"failedAddresses"`
	TotalAddresses  int            `json:"totalAddresses"`
	SuccessCount    int            `json:"successCount"`

	// Partial is set when the scan ran out of its time budget and the
	// addresses it never reached are reported in FailedAddresses.
	Partial    bool            `json:"partial"`
	ScanID     string          `json:"scanId,omitempty"`
	Mode       ScanMode        `json:"mode"`
	ScanTime   int64           `json:"scanTime"`
	Endpoint   string          `json:"endpoint,omitempty"`
	LPBalance  decimal.Decimal `json:"lpBalance"`
	LastUpdate int64           `json:"lastUpdate"`
}
