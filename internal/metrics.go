package internal

import (
	"sort"
	"sync"
	"time"
)

type MetricsCollector struct {
	logger *Logger

	requestCount    map[string]int64
	requestDuration map[string][]int64
	apiErrors       map[string]int64
	upstreamCalls   int64
	upstreamErrors  int64

	mu sync.RWMutex
}

func NewMetricsCollector(logger *Logger) *MetricsCollector {
	mc := &MetricsCollector{
		logger:          logger,
		requestCount:    make(map[string]int64),
		requestDuration: make(map[string][]int64),
		apiErrors:       make(map[string]int64),
	}

	go mc.startMetricsReporter()
	return mc
}

func (mc *MetricsCollector) RecordRequest(endpoint string, duration time.Duration, statusCode int) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.requestCount[endpoint]++
	mc.requestDuration[endpoint] = append(mc.requestDuration[endpoint], duration.Milliseconds())

	if statusCode >= 400 {
		mc.apiErrors[endpoint]++
	}
}

// RecordUpstream counts one call against the stats API.
func (mc *MetricsCollector) RecordUpstream(failed bool) {
	mc.mu.Lock()
	defer mc.mu.Unlock()

	mc.upstreamCalls++
	if failed {
		mc.upstreamErrors++
	}
}

func (mc *MetricsCollector) startMetricsReporter() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		mc.reportMetrics()
	}
}

func (mc *MetricsCollector) reportMetrics() {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	mc.logger.Info("metrics_report").
		Component("metrics").
		Operation("report").
		Meta("total_requests", mc.sumMapValues(mc.requestCount)).
		Meta("total_errors", mc.sumMapValues(mc.apiErrors)).
		Meta("upstream_calls", mc.upstreamCalls).
		Meta("upstream_errors", mc.upstreamErrors).
		Meta("upstream_error_rate_percent", mc.calculateUpstreamErrorRate()).
		Log()

	mc.reportEndpointPerformance()
}

func (mc *MetricsCollector) reportEndpointPerformance() {
	for endpoint, durations := range mc.requestDuration {
		if len(durations) == 0 {
			continue
		}

		mc.logger.Info("endpoint_performance").
			Component("metrics").
			Operation("performance_report").
			Meta("endpoint", endpoint).
			Meta("request_count", mc.requestCount[endpoint]).
			Meta("avg_duration_ms", mc.calculateAverage(durations)).
			Meta("p95_duration_ms", mc.calculatePercentile(durations, 0.95)).
			Meta("error_count", mc.apiErrors[endpoint]).
			Log()
	}
}

func (mc *MetricsCollector) sumMapValues(m map[string]int64) int64 {
	sum := int64(0)
	for _, count := range m {
		sum += count
	}
	return sum
}

func (mc *MetricsCollector) calculateUpstreamErrorRate() float64 {
	if mc.upstreamCalls == 0 {
		return 0
	}
	return float64(mc.upstreamErrors) / float64(mc.upstreamCalls) * 100
}

func (mc *MetricsCollector) calculateAverage(values []int64) float64 {
	if len(values) == 0 {
		return 0
	}

	sum := int64(0)
	for _, v := range values {
		sum += v
	}

	return float64(sum) / float64(len(values))
}

func (mc *MetricsCollector) calculatePercentile(values []int64, percentile float64) int64 {
	if len(values) == 0 {
		return 0
	}

	sortedValues := make([]int64, len(values))
	copy(sortedValues, values)
	sort.Slice(sortedValues, func(i, j int) bool {
		return sortedValues[i] < sortedValues[j]
	})

	index := int(percentile * float64(len(sortedValues)-1))
	return sortedValues[index]
}

func (mc *MetricsCollector) GetMetrics() map[string]interface{} {
	mc.mu.RLock()
	defer mc.mu.RUnlock()

	return map[string]interface{}{
		"upstream": map[string]interface{}{
			"calls":      mc.upstreamCalls,
			"errors":     mc.upstreamErrors,
			"error_rate": mc.calculateUpstreamErrorRate(),
		},
		"requests": mc.requestCount,
		"errors":   mc.apiErrors,
	}
}
