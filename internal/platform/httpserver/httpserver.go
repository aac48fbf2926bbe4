// Package httpserver builds the process's HTTP server. Command bodies are
// small JSON payloads except for portrait and scan uploads, so only the
// header read gets a server-side timeout; per-request deadlines are applied
// by middleware on the command routes.
package httpserver

import (
	"net/http"
	"time"
)

// New builds an HTTP server with sane defaults for this project.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
