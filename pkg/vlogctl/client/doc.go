// Package client implements the HTTP client for the vlogctl CLI to
// communicate with the versionlog API server, authenticating with the
// server's session cookie.
package client
