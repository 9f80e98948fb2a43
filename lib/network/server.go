package network

import (
	"context"
	"net/http"

	"golang.org/x/net/http2"
)

// Server serves the handler over HTTP/2 when the endpoint is https, and
// over HTTP/1.1 otherwise.
type Server struct {
	config *ServerConfig
	server *http.Server
}

func NewServer(config *ServerConfig, handler http.Handler) (*Server, error) {
	server := &http.Server{
		Addr:              config.Addr,
		Handler:           handler,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		IdleTimeout:       config.IdleTimeout,
	}
	server.SetKeepAlivesEnabled(true)

	if config.IsHTTPS() {
		if err := http2.ConfigureServer(server, &http2.Server{IdleTimeout: config.IdleTimeout}); err != nil {
			return nil, err
		}
	}

	return &Server{config: config, server: server}, nil
}

func (s *Server) Endpoint() string {
	return s.config.Endpoint.String()
}

// Start blocks until the server is stopped; it returns nil after `Stop`.
func (s *Server) Start() (err error) {
	log.Info("starting server", "endpoint", s.config.Endpoint.Host, "https", s.config.IsHTTPS())

	if s.config.IsHTTPS() {
		err = s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		return nil
	}

	return err
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
