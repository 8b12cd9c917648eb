package network

import (
	"context"
	"io"
	stdlog "log"
	"net/http"
	"net/url"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"golang.org/x/net/http2"
)

const (
	RouterNameAPI    = "api"
	RouterNameMetric = "metric"

	UrlPathPrefixAPI    = "/api"
	UrlPathPrefixMetric = "/metrics"
)

// Server serves the api and the metrics over HTTP/2.
type Server struct {
	config  ServerConfig
	server  *http.Server
	router  *mux.Router
	routers map[string]*mux.Router

	accessLog io.Writer
}

func NewServer(config ServerConfig) *Server {
	server := &http.Server{
		Addr:              config.Addr,
		ReadTimeout:       config.ReadTimeout,
		ReadHeaderTimeout: config.ReadHeaderTimeout,
		WriteTimeout:      config.WriteTimeout,
		ErrorLog:          stdlog.New(HTTP2ErrorLog15Writer{l: log}, "", 0),
	}
	server.SetKeepAlivesEnabled(true)

	http2.ConfigureServer(
		server,
		&http2.Server{
			IdleTimeout: config.IdleTimeout,
		},
	)

	router := mux.NewRouter()
	s := &Server{
		config: config,
		server: server,
		router: router,
		routers: map[string]*mux.Router{
			RouterNameAPI:    router.PathPrefix(UrlPathPrefixAPI).Subrouter(),
			RouterNameMetric: router.PathPrefix(UrlPathPrefixMetric).Subrouter(),
		},
	}

	return s
}

func (s *Server) Config() ServerConfig {
	return s.config
}

func (s *Server) Endpoint() *url.URL {
	return s.config.Endpoint
}

// SetAccessLog writes the combined access log of every request to `w`.
func (s *Server) SetAccessLog(w io.Writer) {
	s.accessLog = w
}

// Router returns the named sub router; an empty name is the base router.
func (s *Server) Router(name string) (*mux.Router, error) {
	if len(name) < 1 {
		return s.router, nil
	}

	router, found := s.routers[name]
	if !found {
		return nil, errors.Errorf("router, %q not found", name)
	}
	return router, nil
}

// AddMiddleware adds middlewares to the named router; the middlewares of the
// base router impact all sub routers.
func (s *Server) AddMiddleware(name string, mws ...mux.MiddlewareFunc) error {
	router, err := s.Router(name)
	if err != nil {
		return err
	}

	router.Use(mws...)
	return nil
}

// AddHandler adds a handler to the named router.
func (s *Server) AddHandler(name, pattern string, handler http.HandlerFunc) (*mux.Route, error) {
	router, err := s.Router(name)
	if err != nil {
		return nil, err
	}

	return router.HandleFunc(pattern, handler), nil
}

func (s *Server) Handler() http.Handler {
	var handler http.Handler = s.router
	if s.accessLog != nil {
		handler = handlers.CombinedLoggingHandler(s.accessLog, handler)
	}

	return NewHTTP2Log15Handler(log, handler)
}

// Start blocks until the server is stopped.
func (s *Server) Start() (err error) {
	s.server.Handler = s.Handler()

	log.Info("starting server", "addr", s.config.Addr, "https", s.config.IsHTTPS())
	if s.config.IsHTTPS() {
		err = s.server.ListenAndServeTLS(s.config.TLSCertFile, s.config.TLSKeyFile)
	} else {
		err = s.server.ListenAndServe()
	}

	if err == http.ErrServerClosed {
		err = nil
	}
	return
}

func (s *Server) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
