package common

import (
	"mime"
	"net/http"

	"github.com/gorilla/mux"
)

// PostAndJSONMatcher passes POST only with json body; the charset parameter
// is allowed. The other methods are passed as they are.
func PostAndJSONMatcher(r *http.Request, rm *mux.RouteMatch) bool {
	if r.Method != http.MethodPost {
		return true
	}

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}
