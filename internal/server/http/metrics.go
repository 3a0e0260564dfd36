package http

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds Prometheus metrics for the HTTP API.
//
// Metrics:
//   - fishfarmer_http_requests_total{method,route,status}
//   - fishfarmer_http_request_duration_seconds{method,route}
//   - fishfarmer_account_events_total{event,outcome}
//   - fishfarmer_advisor_calls_total{endpoint,outcome}
type Metrics struct {
	RequestsTotal   *prometheus.CounterVec
	RequestDuration *prometheus.HistogramVec
	AccountEvents   *prometheus.CounterVec
	AdvisorCalls    *prometheus.CounterVec
}

// NewMetrics creates the metrics and registers them with reg. It panics if
// reg already holds them.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		RequestsTotal: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fishfarmer_http_requests_total",
				Help: "Total HTTP requests by method, route and status code",
			},
			[]string{"method", "route", "status"},
		),
		RequestDuration: f.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "fishfarmer_http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.001, 2, 16), // 1ms to ~33s
			},
			[]string{"method", "route"},
		),
		AccountEvents: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fishfarmer_account_events_total",
				Help: "Registrations and logins by outcome",
			},
			[]string{"event", "outcome"}, // register|login
		),
		AdvisorCalls: f.NewCounterVec(
			prometheus.CounterOpts{
				Name: "fishfarmer_advisor_calls_total",
				Help: "Advisor requests by endpoint and outcome",
			},
			[]string{"endpoint", "outcome"},
		),
	}
}

// Middleware returns an echo middleware recording request count and
// duration. Handler errors are resolved through the echo error handler
// first so the recorded status is the one sent to the client.
func (m *Metrics) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			if err := next(c); err != nil {
				c.Error(err)
			}

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method

			m.RequestsTotal.WithLabelValues(method, route, strconv.Itoa(c.Response().Status)).Inc()
			m.RequestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}

func (m *Metrics) accountEvent(event, outcome string) {
	m.AccountEvents.WithLabelValues(event, outcome).Inc()
}

func (m *Metrics) advisorCall(endpoint, outcome string) {
	m.AdvisorCalls.WithLabelValues(endpoint, outcome).Inc()
}
