package network

import (
	"net/http"

	logging "github.com/inconshreveable/log15"

	"boscoin.io/herehere/lib/common"
)

const HeaderRequestID = "X-Request-Id"

type HTTP2ErrorLog15Writer struct {
	l logging.Logger
}

func (w HTTP2ErrorLog15Writer) Write(b []byte) (int, error) {
	w.l.Error("error", "error", string(b))
	return len(b), nil
}

type HTTP2ResponseLog15Writer struct {
	w      http.ResponseWriter
	status int
	size   int
}

func (l *HTTP2ResponseLog15Writer) Header() http.Header {
	return l.w.Header()
}

func (l *HTTP2ResponseLog15Writer) Write(b []byte) (int, error) {
	if l.status == 0 {
		l.status = http.StatusOK
	}
	size, err := l.w.Write(b)
	l.size += size
	return size, err
}

func (l *HTTP2ResponseLog15Writer) WriteHeader(s int) {
	l.w.WriteHeader(s)
	l.status = s
}

func (l *HTTP2ResponseLog15Writer) Status() int {
	return l.status
}

func (l *HTTP2ResponseLog15Writer) Size() int {
	return l.size
}

func (l *HTTP2ResponseLog15Writer) Flush() {
	f, ok := l.w.(http.Flusher)
	if ok {
		f.Flush()
	}
}

// HTTP2Log15Handler logs the request and the response with the same request
// id; the id comes from the `X-Request-Id` header or is generated, and is
// returned in the response header.
type HTTP2Log15Handler struct {
	log     logging.Logger
	handler http.Handler
}

func NewHTTP2Log15Handler(logger logging.Logger, handler http.Handler) HTTP2Log15Handler {
	return HTTP2Log15Handler{log: logger, handler: handler}
}

var HeaderKeyFiltered []string = []string{
	"Content-Length",
	"Content-Type",
	"Accept",
	"Accept-Encoding",
	"User-Agent",
}

// ServeHTTP will log in 2 phase, when request received and response sent. This
// was derived from github.com/gorilla/handlers/handlers.go
func (l HTTP2Log15Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	uid := r.Header.Get(HeaderRequestID)
	if len(uid) < 1 {
		uid = common.GenerateUUID()
		r.Header.Set(HeaderRequestID, uid)
	}
	w.Header().Set(HeaderRequestID, uid)

	uri := r.RequestURI
	if r.ProtoMajor == 2 && r.Method == "CONNECT" {
		uri = r.Host
	}
	if uri == "" {
		uri = r.URL.RequestURI()
	}

	header := http.Header{}
	for key, value := range r.Header {
		if _, found := common.InStringArray(HeaderKeyFiltered, key); found {
			continue
		}
		header[key] = value
	}

	l.log.Debug(
		"request",
		"content-length", r.ContentLength,
		"content-type", r.Header.Get("Content-Type"),
		"headers", header,
		"host", r.Host,
		"id", uid,
		"method", r.Method,
		"proto", r.Proto,
		"referer", r.Referer(),
		"remote", r.RemoteAddr,
		"uri", uri,
		"user-agent", r.UserAgent(),
	)

	writer := &HTTP2ResponseLog15Writer{w: w}
	l.handler.ServeHTTP(writer, r)

	l.log.Debug(
		"response",
		"id", uid,
		"status", writer.Status(),
		"size", writer.Size(),
	)
}
