package prometheus

import (
	"strconv"
	"time"
)

// AppMetrics holds every metric family DealLens records.
type AppMetrics struct {
	// HTTP layer
	HTTPRequestsTotal   CounterVec
	HTTPRequestDuration HistogramVec
	HTTPActiveRequests  GaugeVec

	// Valuation
	ValuationsTotal      CounterVec
	ValuationCacheHits   CounterVec
	ValuationCacheMisses CounterVec

	// Extraction
	DealsExtractedTotal   CounterVec
	ExtractionDuration    HistogramVec
	DealSinkWritesTotal   CounterVec
	DealSinkFailuresTotal CounterVec

	// Worker
	DealEventsConsumedTotal CounterVec
}

// Default Buckets
var (
	DefaultHTTPDurationBuckets       = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5}
	DefaultExtractionDurationBuckets = []float64{.01, .05, .1, .5, 1, 5, 10, 30}
)

// NewAppMetrics registers all families on collector.
func NewAppMetrics(collector MetricsCollector) *AppMetrics {
	if collector == nil {
		collector = NewNoopCollector()
	}
	return &AppMetrics{
		HTTPRequestsTotal:   collector.RegisterCounter("http_requests_total", "Total HTTP requests", "method", "route", "status"),
		HTTPRequestDuration: collector.RegisterHistogram("http_request_duration_seconds", "HTTP request latency", DefaultHTTPDurationBuckets, "method", "route"),
		HTTPActiveRequests:  collector.RegisterGauge("http_active_requests", "In-flight HTTP requests"),

		ValuationsTotal:      collector.RegisterCounter("valuations_total", "Valuations computed, by resolved sector baseline", "base_multiple"),
		ValuationCacheHits:   collector.RegisterCounter("valuation_cache_hits_total", "Score cache hits"),
		ValuationCacheMisses: collector.RegisterCounter("valuation_cache_misses_total", "Score cache misses"),

		DealsExtractedTotal:   collector.RegisterCounter("deals_extracted_total", "Deal records emitted by extraction", "sector"),
		ExtractionDuration:    collector.RegisterHistogram("extraction_duration_seconds", "Extraction run duration", DefaultExtractionDurationBuckets),
		DealSinkWritesTotal:   collector.RegisterCounter("deal_sink_writes_total", "Records written per sink", "sink"),
		DealSinkFailuresTotal: collector.RegisterCounter("deal_sink_failures_total", "Records a sink failed to accept", "sink"),

		DealEventsConsumedTotal: collector.RegisterCounter("deal_events_consumed_total", "Deal events consumed by the worker", "result"),
	}
}

// RecordHTTPRequest records one completed request.
func (m *AppMetrics) RecordHTTPRequest(method, route string, status int, d time.Duration) {
	m.HTTPRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, route).Observe(d.Seconds())
}

// RecordValuation records a computed valuation.
func (m *AppMetrics) RecordValuation(baseMultiple float64, cacheHit bool) {
	m.ValuationsTotal.WithLabelValues(strconv.FormatFloat(baseMultiple, 'f', -1, 64)).Inc()
	if cacheHit {
		m.ValuationCacheHits.WithLabelValues().Inc()
	} else {
		m.ValuationCacheMisses.WithLabelValues().Inc()
	}
}

// RecordDealExtracted counts one emitted record.
func (m *AppMetrics) RecordDealExtracted(sector string) {
	m.DealsExtractedTotal.WithLabelValues(sector).Inc()
}

// RecordSink records per-sink outcome counts.
func (m *AppMetrics) RecordSink(sink string, written, failed int) {
	if written > 0 {
		m.DealSinkWritesTotal.WithLabelValues(sink).Add(float64(written))
	}
	if failed > 0 {
		m.DealSinkFailuresTotal.WithLabelValues(sink).Add(float64(failed))
	}
}

//Personal.AI order the ending
