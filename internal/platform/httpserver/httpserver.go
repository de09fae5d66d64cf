// Package httpserver builds the API server with timeouts sized for the
// recommendation pipeline.
package httpserver

import (
	"net/http"
	"time"
)

// WriteTimeout exceeds the longest handler timeout (recommendation
// generation runs up to two minutes) so the server never cuts off a
// response the middleware chain still allows.
const (
	readHeaderTimeout = 5 * time.Second
	writeTimeout      = 150 * time.Second
	idleTimeout       = 120 * time.Second
)

// New builds an HTTP server for the given address and root handler.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
	}
}
