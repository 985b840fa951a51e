package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ServerMetrics struct {
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
	Verifications *prometheus.CounterVec
}

func NewServerMetrics() *ServerMetrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding_admin",
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "wedding_admin",
		Name:      "http_request_duration_ms",
		Help:      "HTTP request latency in milliseconds.",
		Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
	}, []string{"route"})
	verifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "wedding_admin",
		Name:      "payment_verifications_total",
		Help:      "Payment verification attempts by outcome.",
	}, []string{"result"})

	prometheus.MustRegister(requests, latency, verifications)
	return &ServerMetrics{Requests: requests, LatencyMS: latency, Verifications: verifications}
}

func Handler() http.Handler {
	return promhttp.Handler()
}
