// Package auth provides credential verification (bcrypt password hashing),
// cookie-backed opaque-token sessions, one-shot flash messages, and Gin
// middleware gating page and API routes.
package auth
