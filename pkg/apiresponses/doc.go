// Package apiresponses provides standardized JSON response helpers for the
// versionlog API. Internal error detail is logged server-side only; clients
// receive a fixed generic message so failures never leak implementation
// detail.
package apiresponses
