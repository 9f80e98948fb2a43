package network

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ServerConfig is parsed from the endpoint of node, ie.
// "https://localhost:12345?TLSCertFile=minidao.crt&TLSKeyFile=minidao.key".
type ServerConfig struct {
	Endpoint *url.URL
	Addr     string

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func getURLQuery(query url.Values, key, defaultValue string) string {
	v := query.Get(key)
	if len(v) < 1 {
		return defaultValue
	}

	return v
}

func parseTimeout(query url.Values, key string) (d time.Duration, err error) {
	if d, err = time.ParseDuration(getURLQuery(query, key, "0s")); err != nil {
		return 0, errors.Wrapf(err, "invalid '%s'", key)
	}
	if d < 0 {
		return 0, errors.Errorf("invalid '%s'", key)
	}

	return
}

func NewServerConfigFromEndpoint(endpoint *url.URL) (config *ServerConfig, err error) {
	scheme := strings.ToLower(endpoint.Scheme)
	if scheme != "http" && scheme != "https" {
		return nil, errors.Errorf("unsupported scheme, '%s'", endpoint.Scheme)
	}
	if len(endpoint.Host) < 1 {
		return nil, errors.New("empty host")
	}

	query := endpoint.Query()

	config = &ServerConfig{
		Endpoint:    endpoint,
		Addr:        endpoint.Host,
		TLSCertFile: query.Get("TLSCertFile"),
		TLSKeyFile:  query.Get("TLSKeyFile"),
	}

	if config.ReadTimeout, err = parseTimeout(query, "ReadTimeout"); err != nil {
		return nil, err
	}
	if config.ReadHeaderTimeout, err = parseTimeout(query, "ReadHeaderTimeout"); err != nil {
		return nil, err
	}
	if config.WriteTimeout, err = parseTimeout(query, "WriteTimeout"); err != nil {
		return nil, err
	}
	if config.IdleTimeout, err = parseTimeout(query, "IdleTimeout"); err != nil {
		return nil, err
	}

	if config.IsHTTPS() && (len(config.TLSCertFile) < 1 || len(config.TLSKeyFile) < 1) {
		return nil, errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
	}

	return
}

func (config ServerConfig) IsHTTPS() bool {
	return strings.ToLower(config.Endpoint.Scheme) == "https"
}
