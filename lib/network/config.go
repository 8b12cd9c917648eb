package network

import (
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"boscoin.io/herehere/lib/common"
)

// ServerConfig is read from the query of the bind endpoint, like
// `https://0.0.0.0:12345?TLSCertFile=a.crt&TLSKeyFile=a.key&ReadTimeout=5s`.
type ServerConfig struct {
	Endpoint *url.URL `json:"endpoint"`
	Addr     string   `json:"addr"`

	ReadTimeout,
	ReadHeaderTimeout,
	WriteTimeout,
	IdleTimeout time.Duration

	TLSCertFile,
	TLSKeyFile string
}

func NewServerConfigFromString(s string) (ServerConfig, error) {
	endpoint, err := url.Parse(s)
	if err != nil {
		return ServerConfig{}, errors.Wrap(err, "invalid endpoint")
	}
	return NewServerConfigFromURL(endpoint)
}

func parseTimeout(query url.Values, name string) (d time.Duration, err error) {
	if d, err = time.ParseDuration(common.GetUrlQuery(query, name, "0s")); err != nil {
		err = errors.Wrapf(err, "invalid '%s'", name)
		return
	}
	if d < 0*time.Second {
		err = errors.Errorf("invalid '%s'", name)
	}
	return
}

func NewServerConfigFromURL(endpoint *url.URL) (config ServerConfig, err error) {
	scheme := strings.ToLower(endpoint.Scheme)
	if scheme != "http" && scheme != "https" {
		err = errors.Errorf("unsupported scheme, %q", endpoint.Scheme)
		return
	}
	if len(endpoint.Host) < 1 {
		err = errors.New("host is missing")
		return
	}

	query := endpoint.Query()

	config = ServerConfig{
		Endpoint:    endpoint,
		Addr:        endpoint.Host,
		TLSCertFile: query.Get("TLSCertFile"),
		TLSKeyFile:  query.Get("TLSKeyFile"),
	}

	if config.ReadTimeout, err = parseTimeout(query, "ReadTimeout"); err != nil {
		return
	}
	if config.ReadHeaderTimeout, err = parseTimeout(query, "ReadHeaderTimeout"); err != nil {
		return
	}
	if config.WriteTimeout, err = parseTimeout(query, "WriteTimeout"); err != nil {
		return
	}
	if config.IdleTimeout, err = parseTimeout(query, "IdleTimeout"); err != nil {
		return
	}

	if scheme == "https" && !config.IsHTTPS() {
		err = errors.New("HTTPS needs `TLSCertFile` and `TLSKeyFile`")
		return
	}

	return
}

func (config ServerConfig) IsHTTPS() bool {
	return len(config.TLSCertFile) > 0 && len(config.TLSKeyFile) > 0
}

func (config ServerConfig) String() string {
	return string(common.MustMarshalJSON(config))
}
