package storage

import (
	"net/url"

	"github.com/pkg/errors"
)

// Config is parsed from the storage uri, "memory://" or
// "file:///path/to/db".
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, errors.Wrap(err, "invalid storage uri")
	}

	switch parsed.Scheme {
	case "memory":
	case "file":
		if len(parsed.Path) < 1 {
			return nil, errors.Errorf("empty path in storage uri: %q", s)
		}
	default:
		return nil, errors.Errorf("unsupported storage scheme: %q", parsed.Scheme)
	}

	return &Config{Scheme: parsed.Scheme, Path: parsed.Path}, nil
}

func (c Config) String() string {
	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
