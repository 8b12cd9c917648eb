package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/network/httputils"
	"boscoin.io/herehere/lib/node"
	"boscoin.io/herehere/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern                 = "/"
	GetAccountHandlerPattern           = "/accounts/{id}"
	GetRegistryHandlerPattern          = "/registries/{id}"
	GetRegistryPollsHandlerPattern     = "/registries/{id}/polls"
	GetRegistryPollHandlerPattern      = "/registries/{id}/polls/{pollID}"
	GetPollHandlerPattern              = "/polls/{id}"
	GetPollBallotsHandlerPattern       = "/polls/{id}/ballots"
	GetPollBallotHandlerPattern        = "/polls/{id}/ballots/{voter}"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	PostTransactionPattern             = "/transactions"
)

// streamBufferSize is the number of events kept for a slow stream reader;
// more events are dropped.
const streamBufferSize = 64

type NetworkHandlerAPI struct {
	ledger    *ledger.Ledger
	executor  *transaction.Executor
	urlPrefix string
	version   string
	nodeInfo  node.NodeInfo
}

func NewNetworkHandlerAPI(executor *transaction.Executor, urlPrefix string, nodeInfo node.NodeInfo) *NetworkHandlerAPI {
	return &NetworkHandlerAPI{
		ledger:    executor.Ledger(),
		executor:  executor,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
		nodeInfo:  nodeInfo,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

func renderEventStream(v interface{}) ([]byte, error) {
	if h, ok := v.(httputils.HALResource); ok {
		return json.Marshal(h.Resource())
	}

	return json.Marshal(v)
}

// streaming writes `initial` and then the events named `events` thru the
// ledger observer, one json document a line, until the connection is closed.
// `render` turns an event into the document to write.
func streaming(r *http.Request, w http.ResponseWriter, events []string, initial interface{}, render func(observer.Event) (interface{}, error)) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		httputils.WriteJSONError(w, fmt.Errorf("streaming is not supported"))
		return
	}

	metrics.API.StreamsOpen.Add(1)
	defer metrics.API.StreamsOpen.Add(-1)

	eventChan := make(chan observer.Event, streamBufferSize)
	observerFunc := func(args ...interface{}) {
		e, ok := args[0].(observer.Event)
		if !ok {
			return
		}

		select {
		case eventChan <- e:
		default:
			log.Debug("stream is too slow; event dropped", "event", e.String())
		}
	}

	for _, event := range events {
		observer.LedgerObserver.On(event, observerFunc)
		defer observer.LedgerObserver.Off(event, observerFunc)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)

	write := func(v interface{}) bool {
		s, err := renderEventStream(v)
		if err != nil {
			log.Error("failed to render event", "error", err)
			return true
		}
		if _, err = fmt.Fprintf(w, "%s\n", s); err != nil {
			return false
		}
		flusher.Flush()
		return true
	}

	if initial != nil && !write(initial) {
		return
	}

	for {
		select {
		case <-r.Context().Done():
			return
		case e := <-eventChan:
			v, err := render(e)
			if err != nil {
				log.Error("failed to render event", "event", e.String(), "error", err)
				continue
			}
			if !write(v) {
				return
			}
		}
	}
}
