// Package metrics exposes Prometheus collectors for the HTTP layer and
// the click tracking pipeline.
package metrics

import (
	"bufio"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Total HTTP requests partitioned by method, route, and status code
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latencies in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)

	httpInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_inflight_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)

	ClicksRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_clicks_recorded_total",
			Help: "Click events persisted, by platform",
		},
		[]string{"platform"},
	)

	ClickRecordFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tracking_click_record_failures_total",
			Help: "Click events that failed to persist",
		},
	)

	ConversionsChanged = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tracking_conversion_changes_total",
			Help: "Conversion flag transitions, by platform and direction",
		},
		[]string{"platform", "direction"},
	)

	FeedClients = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "tracking_feed_clients",
			Help: "Connected live feed websocket clients",
		},
	)

	DigestClicks = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tracking_digest_clicks",
			Help: "Clicks in the last digest window, by platform",
		},
		[]string{"platform"},
	)

	DigestConversionRate = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "tracking_digest_conversion_rate_percent",
			Help: "Conversion rate in the last digest window, by platform",
		},
		[]string{"platform"},
	)
)

// ConversionDirection is the label value for a conversion transition.
func ConversionDirection(converted bool) string {
	if converted {
		return "converted"
	}
	return "reverted"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Hijack keeps websocket upgrades working through the middleware.
func (r *statusRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	h, ok := r.ResponseWriter.(http.Hijacker)
	if !ok {
		return nil, nil, fmt.Errorf("response writer does not support hijacking")
	}
	r.status = http.StatusSwitchingProtocols
	return h.Hijack()
}

// Middleware records request count, latency and in-flight requests.
// The route label is the mux path template to keep cardinality low.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		httpInFlight.Inc()
		defer httpInFlight.Dec()

		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		route := "unmatched"
		if cr := mux.CurrentRoute(r); cr != nil {
			if tpl, err := cr.GetPathTemplate(); err == nil {
				route = tpl
			}
		}

		labels := prometheus.Labels{
			"method": r.Method,
			"route":  route,
			"status": strconv.Itoa(rec.status),
		}
		httpRequestsTotal.With(labels).Inc()
		httpRequestDuration.With(labels).Observe(time.Since(start).Seconds())
	})
}
