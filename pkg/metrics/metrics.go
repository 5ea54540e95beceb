package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	HTTPRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "versionlog_http_requests_total",
		Help: "Total number of HTTP requests served, by route, method and status",
	}, []string{"route", "method", "status"})

	// Auth metrics
	Logins = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "versionlog_logins_total",
		Help: "Total number of login attempts, by result (success/failure)",
	}, []string{"result"})
	Registrations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "versionlog_registrations_total",
		Help: "Total number of registration attempts, by result (success/failure)",
	}, []string{"result"})

	// Version entry metrics
	VersionsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "versionlog_versions_created_total",
		Help: "Total number of version entries created",
	})
	VersionsDeleted = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "versionlog_versions_deleted_total",
		Help: "Total number of version entries deleted",
	})

	RateLimited = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "versionlog_rate_limited_total",
		Help: "Total number of requests rejected by the rate limiter, by route",
	}, []string{"route"})
)

func init() {
	prometheus.MustRegister(HTTPRequests)
	prometheus.MustRegister(Logins)
	prometheus.MustRegister(Registrations)
	prometheus.MustRegister(VersionsCreated)
	prometheus.MustRegister(VersionsDeleted)
	prometheus.MustRegister(RateLimited)
}

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// MetricsHandler returns an http.Handler exposing Prometheus metrics.
func MetricsHandler() http.Handler {
	return promhttp.Handler()
}
