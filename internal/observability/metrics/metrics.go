package metrics

import (
	"fmt"
	"net/http"
	"strconv"
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

var (
	once                         sync.Once
	registerOnce                 sync.Once
	metricsRouter                *chi.Mux
	operationLatency             *prometheus.HistogramVec
	operationPayoutCounter       *prometheus.CounterVec
	solvencyGuardTripCounter     prometheus.Counter
	poolTotalStakedGauge         prometheus.Gauge
	poolAssetBalanceGauge        prometheus.Gauge
	poolSolvencyGapGauge         prometheus.Gauge
	poolStakerCountGauge         prometheus.Gauge
	assetLedgerLatency           *prometheus.HistogramVec
	queueSendErrorCounter        prometheus.Counter
	pollerDurationHistogram      *prometheus.HistogramVec
	eventProcessingDuration      *prometheus.HistogramVec
	httpRequestDurationHistogram *prometheus.HistogramVec
	dbLatency                    *prometheus.HistogramVec
)

// Init initializes the metrics package and starts the metrics server.
func Init(metricsPort int) {
	once.Do(func() {
		initMetricsRouter(metricsPort)
		Register()
	})
}

// Register registers the collectors without starting the metrics server.
// Tests that go through instrumented code paths call it directly.
func Register() {
	registerOnce.Do(registerMetrics)
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

// registerMetrics initializes and register the Prometheus metrics.
func registerMetrics() {
	defaultHistogramBucketsSeconds := []float64{0.1, 0.5, 1, 2.5, 5, 10, 30}

	operationLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staking_operation_latency_seconds",
			Help:    "Histogram of staking operation durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"operation", "status"},
	)

	// amounts are in the smallest asset unit, precision loss above 2^53 is acceptable here
	operationPayoutCounter = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "staking_payout_units_total",
			Help: "Units paid out of the pool split by operation and kind (reward or principal)",
		},
		[]string{"operation", "kind"},
	)

	solvencyGuardTripCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "staking_solvency_guard_trip_count",
			Help: "Number of payouts rejected because the pool balance could not cover them",
		},
	)

	poolTotalStakedGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_pool_total_staked",
			Help: "Total staked as tracked by the pool ledger",
		},
	)

	poolAssetBalanceGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_pool_asset_balance",
			Help: "Asset units the pool holds on the external ledger",
		},
	)

	poolSolvencyGapGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_pool_solvency_gap",
			Help: "Sum of staked principal minus the pool asset balance, positive means principal is not fully backed",
		},
	)

	poolStakerCountGauge = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "staking_pool_staker_count",
			Help: "Number of accounts with a non-zero staked balance",
		},
	)

	assetLedgerLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "asset_ledger_latency_seconds",
			Help:    "Histogram of asset ledger call durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "status"},
	)

	// add a counter for the number of errors from the fail to push message into queue
	queueSendErrorCounter = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "queue_send_error_count",
			Help: "The total number of errors when sending messages to the queue",
		},
	)

	pollerDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "poller_duration_seconds",
			Help:    "Histogram of poller durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"type", "status"},
	)

	eventProcessingDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "staking_event_processing_duration_seconds",
			Help:    "Staking event processing duration in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"event_type", "status", "retry"},
	)

	httpRequestDurationHistogram = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Histogram of incoming http request durations in seconds.",
			Buckets: defaultHistogramBucketsSeconds,
		},
		[]string{"method", "path", "status"},
	)

	dbLatency = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "db_latency_seconds",
			Help: "DB latency in seconds splitted by method and execution status",
		},
		[]string{"method", "status"},
	)

	prometheus.MustRegister(
		operationLatency,
		operationPayoutCounter,
		solvencyGuardTripCounter,
		poolTotalStakedGauge,
		poolAssetBalanceGauge,
		poolSolvencyGapGauge,
		poolStakerCountGauge,
		assetLedgerLatency,
		queueSendErrorCounter,
		pollerDurationHistogram,
		eventProcessingDuration,
		httpRequestDurationHistogram,
		dbLatency,
	)
}

func RecordOperationLatency(d time.Duration, operation string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	operationLatency.WithLabelValues(operation, status.String()).Observe(d.Seconds())
}

func RecordPayout(operation, kind string, units float64) {
	operationPayoutCounter.WithLabelValues(operation, kind).Add(units)
}

func IncSolvencyGuardTrips() {
	solvencyGuardTripCounter.Inc()
}

func RecordPoolStats(totalStaked, assetBalance, solvencyGap float64, stakerCount int) {
	poolTotalStakedGauge.Set(totalStaked)
	poolAssetBalanceGauge.Set(assetBalance)
	poolSolvencyGapGauge.Set(solvencyGap)
	poolStakerCountGauge.Set(float64(stakerCount))
}

func RecordAssetLedgerLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	assetLedgerLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordDbLatency(d time.Duration, method string, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	dbLatency.WithLabelValues(method, status.String()).Observe(d.Seconds())
}

func RecordEventProcessingDuration(d time.Duration, eventType string, retry int, failure bool) {
	status := Success
	if failure {
		status = Error
	}

	retryStr := strconv.Itoa(retry)

	eventProcessingDuration.WithLabelValues(eventType, status.String(), retryStr).Observe(d.Seconds())
}

// RecordHttpRequestDuration records a served request. path is the route
// pattern, not the raw url.
func RecordHttpRequestDuration(d time.Duration, method, path string, statusCode int) {
	httpRequestDurationHistogram.WithLabelValues(
		method,
		path,
		strconv.Itoa(statusCode),
	).Observe(d.Seconds())
}

func RecordQueueSendError() {
	queueSendErrorCounter.Inc()
}
