// Package metrics defines Prometheus metrics for the versionlog server,
// covering HTTP traffic, authentication outcomes, version entry writes,
// and rate limiting.
package metrics
