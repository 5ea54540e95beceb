// Package web serves the server-rendered pages: registration, login, logout,
// and the version listing index. Templates are embedded in the binary.
package web
