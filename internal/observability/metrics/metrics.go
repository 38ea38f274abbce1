package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
)

type Outcome string

const (
	Success                  Outcome       = "success"
	Error                    Outcome       = "error"
	MetricRequestTimeout     time.Duration = 5 * time.Second
	MetricRequestIdleTimeout time.Duration = 10 * time.Second
)

func (O Outcome) String() string {
	return string(O)
}

var defaultHistogramBucketsSeconds = []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

// Collectors are created eagerly so recording works before Init (tests);
// Init registers them and exposes the /metrics endpoint.
var (
	once          sync.Once
	metricsRouter *chi.Mux

	chainClientLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chain_client_latency_seconds",
			Help:    "Histogram of contract read durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	scanDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "scan_duration_seconds",
			Help:    "Histogram of full address scan durations in seconds.",
			Buckets: []float64{1, 10, 30, 60, 300, 600, 1800},
		},
		[]string{"status"},
	)

	scannedAddressesCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "scanned_addresses_total",
			Help: "The total number of scanned addresses split by outcome",
		},
		[]string{"status"},
	)

	skippedRecordsCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "skipped_stake_records_total",
			Help: "Number of stake records that could not be read and were left out of a scan",
		},
	)

	failedAddressesGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_scan_failed_addresses",
			Help: "Number of failed addresses in the last scan",
		},
	)

	activeStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_scan_active_staked",
			Help: "Total amount of unredeemed stake found by the last scan",
		},
	)

	activeRecordsGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "last_scan_active_records",
			Help: "Number of unredeemed stake records found by the last scan",
		},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)
)

// Init initializes the metrics package.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		registerMetrics()
	})
}

// initMetricsRouter initializes the metrics router.
func initMetricsRouter(metricsPort int) {
	metricsRouter = chi.NewRouter()
	metricsRouter.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})
	// Create a custom server with timeout settings
	metricsAddr := fmt.Sprintf(":%d", metricsPort)
	server := &http.Server{
		Addr:         metricsAddr,
		Handler:      metricsRouter,
		ReadTimeout:  MetricRequestTimeout,
		WriteTimeout: MetricRequestTimeout,
		IdleTimeout:  MetricRequestIdleTimeout,
	}

	// Start the server in a separate goroutine
	go func() {
		log.Printf("Starting metrics server on %s", metricsAddr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msgf("Error starting metrics server on %s", metricsAddr)
		}
	}()
}

func registerMetrics() {
	prometheus.MustRegister(
		chainClientLatency,
		pollerDurationHistogram,
		scanDurationHistogram,
		scannedAddressesCounter,
		skippedRecordsCounter,
		failedAddressesGauge,
		activeStakedGauge,
		activeRecordsGauge,
		dbLatency,
	)
}

func outcome(failure bool) Outcome {
	if failure {
		return Error
	}
	return Success
}

func RecordChainClientLatency(d time.Duration, method string, failure bool) {
	chainClientLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	dbLatency.WithLabelValues(method, outcome(failure).String()).Observe(d.Seconds())
}

func RecordScanDuration(d time.Duration, failure bool) {
	scanDurationHistogram.WithLabelValues(outcome(failure).String()).Observe(d.Seconds())
}

func RecordScannedAddress(failure bool) {
	scannedAddressesCounter.WithLabelValues(outcome(failure).String()).Inc()
}

func IncSkippedRecords() {
	skippedRecordsCounter.Inc()
}

// RecordScanResult publishes the headline numbers of the last scan
func RecordScanResult(failedAddresses, activeRecords int, activeStaked float64) {
	failedAddressesGauge.Set(float64(failedAddresses))
	activeRecordsGauge.Set(float64(activeRecords))
	activeStakedGauge.Set(activeStaked)
}
