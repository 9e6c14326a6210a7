package request

import (
	"context"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records Prometheus metrics for every call that passes through it.
type Metrics struct {
	next            Transport
	requestsTotal   *prometheus.CounterVec
	requestDuration *prometheus.HistogramVec
	transportErrors *prometheus.CounterVec
}

// NewMetrics wraps next and registers its collectors with registerer.
// Registering twice with the same registerer panics, so use one Metrics per
// registerer.
func NewMetrics(next Transport, registerer prometheus.Registerer) *Metrics {
	factory := promauto.With(registerer)

	return &Metrics{
		next: next,
		requestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threatresponse",
				Subsystem: "client",
				Name:      "requests_total",
				Help:      "Total number of HTTP responses received, by method and status code",
			},
			[]string{"method", "status_code"},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "threatresponse",
				Subsystem: "client",
				Name:      "request_duration_seconds",
				Help:      "Duration of HTTP calls in seconds",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"method"},
		),
		transportErrors: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "threatresponse",
				Subsystem: "client",
				Name:      "transport_errors_total",
				Help:      "Total number of calls that failed without a response",
			},
			[]string{"method"},
		),
	}
}

// Do implements Transport.
func (m *Metrics) Do(ctx context.Context, req *Request) (*Response, error) {
	start := time.Now()

	resp, err := m.next.Do(ctx, req)

	m.requestDuration.WithLabelValues(req.Method).Observe(time.Since(start).Seconds())

	if resp == nil {
		if err != nil {
			m.transportErrors.WithLabelValues(req.Method).Inc()
		}

		return resp, err
	}

	m.requestsTotal.WithLabelValues(req.Method, strconv.Itoa(resp.StatusCode)).Inc()

	return resp, err
}
