package middleware

import (
	"strconv"
	"sync"
	"time"

	applogger "GreeksBoard/pkg/logger"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type httpMetrics struct {
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
	inFlight prometheus.Gauge
	size     *prometheus.HistogramVec
}

var (
	httpOnce sync.Once
	httpM    *httpMetrics
)

func registerHTTPMetrics() *httpMetrics {
	httpOnce.Do(func() {
		httpM = &httpMetrics{
			requests: promauto.NewCounterVec(prometheus.CounterOpts{
				Name: "greeksboard_http_requests_total",
				Help: "HTTP requests by route template, method and status.",
			}, []string{"route", "method", "status"}),
			duration: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "greeksboard_http_request_duration_seconds",
				Help:    "HTTP request latency. Chart routes include rendering time.",
				Buckets: []float64{0.01, 0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30},
			}, []string{"route", "method", "class"}),
			inFlight: promauto.NewGauge(prometheus.GaugeOpts{
				Name: "greeksboard_http_in_flight_requests",
				Help: "Requests currently being served.",
			}),
			size: promauto.NewHistogramVec(prometheus.HistogramOpts{
				Name:    "greeksboard_http_response_size_bytes",
				Help:    "Response body size. CSV exports and PNG charts dominate the tail.",
				Buckets: prometheus.ExponentialBuckets(256, 4, 8),
			}, []string{"route", "class"}),
		}
	})
	return httpM
}

// Metrics records request counters and latency labelled by the matched route
// template, and logs 5xx responses and requests slower than slow.
func Metrics(l *applogger.Logger, slow time.Duration) echo.MiddlewareFunc {
	m := registerHTTPMetrics()
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			m.inFlight.Inc()
			defer m.inFlight.Dec()

			start := time.Now()
			if err := next(c); err != nil {
				c.Error(err)
			}
			took := time.Since(start)

			route := c.Path()
			if route == "" {
				route = "unmatched"
			}
			method := c.Request().Method
			code := c.Response().Status
			class := statusClass(code)

			m.requests.WithLabelValues(route, method, strconv.Itoa(code)).Inc()
			m.duration.WithLabelValues(route, method, class).Observe(took.Seconds())
			m.size.WithLabelValues(route, class).Observe(float64(c.Response().Size))

			if l == nil {
				return nil
			}
			fields := []applogger.Field{
				applogger.String("route", route),
				applogger.String("method", method),
				applogger.Int("status", code),
				applogger.Duration("duration_ms", took),
			}
			switch {
			case code >= 500:
				l.Error("http request failed", fields...)
			case slow > 0 && took >= slow:
				l.Warn("http request slow", fields...)
			}
			return nil
		}
	}
}

func statusClass(code int) string {
	if code < 100 || code > 599 {
		return "5xx"
	}
	return strconv.Itoa(code/100) + "xx"
}
