package httputils

import (
	"net/http"

	"github.com/nvellon/hal"

	"boscoin.io/herehere/lib/common"
)

type HALResource interface {
	Resource() *hal.Resource
}

// WriteJSON writes the value v to the http response as json encoding; a
// `HALResource` is written as `application/hal+json` and an error as a
// problem.
func WriteJSON(w http.ResponseWriter, code int, v interface{}) error {
	contentType := "application/json"
	switch t := v.(type) {
	case HALResource:
		contentType = "application/hal+json"
		v = t.Resource()
	case Problem:
		contentType = "application/problem+json"
	case error:
		contentType = "application/problem+json"
		v = NewErrorProblem(t, code)
	}

	bs, err := common.JSONMarshalWithoutEscapeHTML(v)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(code)
	if _, err := w.Write(bs); err != nil {
		return err
	}

	return nil
}

func MustWriteJSON(w http.ResponseWriter, code int, v interface{}) {
	if err := WriteJSON(w, code, v); err != nil {
		panic(err)
	}
}

func WriteJSONError(w http.ResponseWriter, err error) {
	MustWriteJSON(w, StatusCode(err), err)
}
