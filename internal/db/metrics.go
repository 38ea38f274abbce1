package db

import (
	"context"
	"time"

	"github.com/stakescan/stake-scanner/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) Get(ctx context.Context, key string) (result []byte, err error) {
	//nolint:errcheck
	d.run("Get", func() error {
		result, err = d.db.Get(ctx, key)
		// a missing key is a normal answer, not a db failure
		if IsNotFoundError(err) {
			return nil
		}
		return err
	})
	return
}

func (d *DbWithMetrics) Set(ctx context.Context, key string, value []byte) error {
	return d.run("Set", func() error {
		return d.db.Set(ctx, key, value)
	})
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
