package storage

import (
	"net/url"
	"path/filepath"

	"boscoin.io/herehere/lib/errors"
)

// Config is parsed from the storage uri; `file:///path/to/db` or
// `memory://`.
type Config struct {
	Scheme string
	Path   string
}

func NewConfigFromString(s string) (*Config, error) {
	u, err := url.Parse(s)
	if err != nil {
		return nil, errors.StorageConfigInvalid.Clone().SetData("error", err.Error())
	}

	return NewConfigFromURL(u)
}

func NewConfigFromURL(u *url.URL) (*Config, error) {
	config := &Config{Scheme: u.Scheme}

	switch u.Scheme {
	case "memory":
	case "file":
		path := u.Path
		if len(u.Host) > 0 {
			path = u.Host + path
		}
		if len(path) < 1 {
			return nil, errors.StorageConfigInvalid.Clone().SetData("error", "empty path")
		}

		var err error
		if config.Path, err = filepath.Abs(path); err != nil {
			return nil, errors.StorageConfigInvalid.Clone().SetData("error", err.Error())
		}
	default:
		return nil, errors.StorageConfigInvalid.Clone().SetData("scheme", u.Scheme)
	}

	return config, nil
}

func (c Config) String() string {
	if c.Scheme == "memory" {
		return "memory://"
	}
	return (&url.URL{Scheme: c.Scheme, Path: c.Path}).String()
}
