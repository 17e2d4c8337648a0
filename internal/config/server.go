package config

import (
	"fmt"
	"net/http"
)

// NewHTTPServer creates the main *http.Server on the configured port.
func NewHTTPServer(cfg AppConfig, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Port),
		Handler: handler,
	}
}
