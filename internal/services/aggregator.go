package services

import (
	"slices"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/stakescan/stake-scanner/internal/types"
)

const (
	unlockWindow2d  = 2 * 86400
	unlockWindow7d  = 7 * 86400
	unlockWindow15d = 15 * 86400
)

// Aggregator folds per-address scan results into a ScanResult. It is
// owned by a single goroutine, the scan orchestrator feeds it one joined
// batch at a time.
type Aggregator struct {
	now int64

	stats         types.Stats
	allRecords    []types.StakeRecord
	activeRecords []types.ActiveRecord
	daily         map[string]*types.DailyBucket
	failed        []string
}

func NewAggregator(now int64) *Aggregator {
	return &Aggregator{
		now:   now,
		daily: make(map[string]*types.DailyBucket),
	}
}

// Add folds the results of one batch. Failed addresses contribute nothing
// but their address.
func (a *Aggregator) Add(results ...types.AddressResult) {
	for _, result := range results {
		if !result.Success {
			a.failed = append(a.failed, result.Address)
			continue
		}

		for _, record := range result.All {
			a.addRecord(record)
		}
		for _, record := range result.Active {
			a.addActive(record)
		}
	}
}

func (a *Aggregator) addRecord(record types.StakeRecord) {
	a.allRecords = append(a.allRecords, record)

	date := types.DateOf(record.StakeTime)
	bucket, ok := a.daily[date]
	if !ok {
		bucket = newDailyBucket(date)
		a.daily[date] = bucket
	}

	bucket.NewStake = bucket.NewStake.Add(record.Amount)
	if record.StakeIndex.IsValid() {
		bucket.ByPool[record.StakeIndex] = bucket.ByPool[record.StakeIndex].Add(record.Amount)
		bucket.Count[record.StakeIndex]++
	}
}

func (a *Aggregator) addActive(record types.ActiveRecord) {
	a.activeRecords = append(a.activeRecords, record)

	s := &a.stats
	s.TotalStaked = s.TotalStaked.Add(record.Amount)

	switch record.StakeIndex {
	case types.StakeIndex1d:
		s.TotalStaked1d = s.TotalStaked1d.Add(record.Amount)
		s.Count1d++
	case types.StakeIndex15d:
		s.TotalStaked15d = s.TotalStaked15d.Add(record.Amount)
		s.Count15d++
	case types.StakeIndex30d:
		s.TotalStaked30d = s.TotalStaked30d.Add(record.Amount)
		s.Count30d++
	}

	// windows are cumulative, a record unlocking within 2 days also
	// unlocks within 7 and 15 days
	if record.UnlockTime <= a.now+unlockWindow2d {
		s.Unlock2d = s.Unlock2d.Add(record.Amount)
	}
	if record.UnlockTime <= a.now+unlockWindow7d {
		s.Unlock7d = s.Unlock7d.Add(record.Amount)
	}
	if record.UnlockTime <= a.now+unlockWindow15d {
		s.Unlock15d = s.Unlock15d.Add(record.Amount)
	}
}

// Result builds the ScanResult for totalAddresses input addresses. It does
// not modify the aggregator and returns fresh slices on every call, so the
// same input always yields the same output.
func (a *Aggregator) Result(totalAddresses int) *types.ScanResult {
	active := slices.Clone(a.activeRecords)
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].StakeTime > active[j].StakeTime
	})

	daily := make([]types.DailyBucket, 0, len(a.daily))
	for _, bucket := range a.daily {
		daily = append(daily, *bucket)
	}
	sort.Slice(daily, func(i, j int) bool {
		return daily[i].Date < daily[j].Date
	})

	failed := slices.Clone(a.failed)
	if failed == nil {
		failed = []string{}
	}
	all := slices.Clone(a.allRecords)
	if all == nil {
		all = []types.StakeRecord{}
	}
	if active == nil {
		active = []types.ActiveRecord{}
	}

	return &types.ScanResult{
		Stats:           a.stats,
		ActiveRecords:   active,
		AllRecords:      all,
		DailyStats:      daily,
		FailedAddresses: failed,
		TotalAddresses:  totalAddresses,
		SuccessCount:    totalAddresses - len(failed),
		ScanTime:        a.now,
	}
}

// Aggregate folds a complete list of address results in one go.
func Aggregate(results []types.AddressResult, now int64) *types.ScanResult {
	aggregator := NewAggregator(now)
	aggregator.Add(results...)
	return aggregator.Result(len(results))
}

func newDailyBucket(date string) *types.DailyBucket {
	bucket := &types.DailyBucket{
		Date:     date,
		NewStake: decimal.Zero,
	}
	for i := range bucket.ByPool {
		bucket.ByPool[i] = decimal.Zero
	}
	return bucket
}
