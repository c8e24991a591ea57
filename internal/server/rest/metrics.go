package rest

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "walletd",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by method, route, and status.",
	}, []string{"method", "route", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "walletd",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency by method and route.",
	}, []string{"method", "route"})

	transactionsSubmitted = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletd",
		Name:      "transactions_submitted_total",
		Help:      "Transfers accepted by the ledger.",
	})

	transactionsFailed = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "walletd",
		Name:      "transactions_failed_total",
		Help:      "Transfers rejected before or during submission.",
	})
)

// MetricsMiddleware records request counts and latency per route.
func MetricsMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			if err != nil {
				c.Error(err)
			}

			route := c.Path()
			method := c.Request().Method
			status := strconv.Itoa(c.Response().Status)

			requestsTotal.WithLabelValues(method, route, status).Inc()
			requestDuration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())

			return err
		}
	}
}
