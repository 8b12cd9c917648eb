package httpcache

import "net/http"

// Wrapper caches the responses of a handler.
type Wrapper interface {
	WrapHandlerFunc(http.HandlerFunc) http.HandlerFunc
	Purge()
}

// NopClient is used when no cache adapter is configured.
type NopClient struct{}

func NewNopClient() *NopClient {
	return &NopClient{}
}

func (NopClient) WrapHandlerFunc(handlerFunc http.HandlerFunc) http.HandlerFunc {
	return handlerFunc
}

func (NopClient) Purge() {}
