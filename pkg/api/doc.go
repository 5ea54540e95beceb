// Package api builds the Gin engine for the versionlog server: request
// logging and recovery, HTTP metrics, controller registration, and the
// listener with optional TLS.
package api
