//
// NodeRunner bridges together the ledger, the transaction executor and the
// http server.
//
package runner

import (
	"context"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	logging "github.com/inconshreveable/log15"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network"
	"boscoin.io/herehere/lib/network/api"
	"boscoin.io/herehere/lib/network/httpcache"
	"boscoin.io/herehere/lib/node"
	"boscoin.io/herehere/lib/transaction"
)

var ledgerCommittedKey = observer.NewEvent(observer.EventLedgerCommitted, observer.ConditionAll, nil).String()

type NodeRunner struct {
	ledger   *ledger.Ledger
	executor *transaction.Executor
	server   *network.Server
	cache    httpcache.Wrapper

	// purgeCache is kept to be removed from the observer at Stop.
	purgeCache func(...interface{})

	log logging.Logger

	Conf     common.Config
	nodeInfo node.NodeInfo
}

func NewNodeRunner(l *ledger.Ledger, server *network.Server) (nr *NodeRunner, err error) {
	nr = &NodeRunner{
		ledger:   l,
		executor: transaction.NewExecutor(l),
		server:   server,
		log:      log.New(logging.Ctx{"endpoint": server.Config().String()}),
		Conf:     l.Config(),
	}

	if nr.cache, err = httpcache.NewClientFromConfig(nr.Conf); err != nil {
		return
	}

	{
		var genesis transaction.Genesis
		err = l.View(func(tx *ledger.Tx) (err error) {
			genesis, err = transaction.GetGenesis(tx)
			return
		})
		if err != nil {
			return
		}
		nr.log.Debug("genesis found", "owner", genesis.Owner, "registry", genesis.Registry)
	}

	nr.nodeInfo = node.NewNodeInfo(nr.Conf, server.Config().String())

	return
}

func (nr *NodeRunner) Ready() (err error) {
	// BaseRouter's middlewares impact all sub routers.
	if err = nr.server.AddMiddleware("", network.RecoverMiddleware(nr.log)); err != nil {
		nr.log.Error("`network.RecoverMiddleware` has an error", "err", err)
		return
	}

	rateLimitMiddlewareAPI := network.RateLimitMiddleware(nr.log, nr.Conf.RateLimitRuleAPI)
	for _, name := range []string{network.RouterNameAPI, network.RouterNameMetric} {
		if err = nr.server.AddMiddleware(name, rateLimitMiddlewareAPI); err != nil {
			nr.log.Error("`network.RateLimitMiddleware` has an error", "router", name, "err", err)
			return
		}
	}

	{ //CORS
		allowedOrigins := ghandlers.AllowedOrigins([]string{"*"})
		allowedMethods := ghandlers.AllowedMethods([]string{"GET", "POST"})
		allowedHeaders := ghandlers.AllowedHeaders([]string{"Content-Type", "X-Requested-With", "Cache-Control", "Access-Control"})

		cors := ghandlers.CORS(allowedOrigins, allowedMethods, allowedHeaders)
		if err = nr.server.AddMiddleware(network.RouterNameAPI, cors, network.MetricsMiddleware); err != nil {
			nr.log.Error("Middleware has an error", "err", err)
			return
		}
	}

	if _, err = nr.server.AddHandler(network.RouterNameMetric, "", promhttp.Handler().ServeHTTP); err != nil {
		return
	}

	apiHandler := api.NewNetworkHandlerAPI(nr.executor, "", nr.nodeInfo)

	handlers := []struct {
		pattern string
		handler http.HandlerFunc
		cached  bool
	}{
		{api.GetNodeInfoPattern, apiHandler.GetNodeInfoHandler, false},
		{api.GetAccountHandlerPattern, apiHandler.GetAccountHandler, true},
		{api.GetRegistryHandlerPattern, apiHandler.GetRegistryHandler, true},
		{api.GetRegistryPollsHandlerPattern, apiHandler.GetRegistryPollsHandler, true},
		{api.GetRegistryPollHandlerPattern, apiHandler.GetRegistryPollHandler, true},
		{api.GetPollHandlerPattern, apiHandler.GetPollHandler, true},
		{api.GetPollBallotsHandlerPattern, apiHandler.GetPollBallotsHandler, true},
		{api.GetPollBallotHandlerPattern, apiHandler.GetPollBallotHandler, true},
		{api.GetTransactionByHashHandlerPattern, apiHandler.GetTransactionByHashHandler, true},
	}

	// the cached pages are stale once the ledger moves
	nr.purgeCache = func(...interface{}) {
		nr.cache.Purge()
	}
	observer.LedgerObserver.On(ledgerCommittedKey, nr.purgeCache)

	for _, h := range handlers {
		handler := h.handler
		if h.cached {
			handler = nr.cache.WrapHandlerFunc(handler)
		}

		r, err := nr.server.AddHandler(network.RouterNameAPI, apiHandler.HandlerURLPattern(h.pattern), handler)
		if err != nil {
			return err
		}
		r.Methods("GET", "OPTIONS")
	}

	r, err := nr.server.AddHandler(
		network.RouterNameAPI,
		apiHandler.HandlerURLPattern(api.PostTransactionPattern),
		apiHandler.PostTransactionHandler,
	)
	if err != nil {
		return
	}
	r.Methods("POST", "OPTIONS").MatcherFunc(common.PostAndJSONMatcher)

	return
}

func (nr *NodeRunner) Start() (err error) {
	nr.log.Debug("NodeRunner started")
	if err = nr.Ready(); err != nil {
		return
	}

	return nr.server.Start()
}

func (nr *NodeRunner) Stop(ctx context.Context) error {
	if nr.purgeCache != nil {
		observer.LedgerObserver.Off(ledgerCommittedKey, nr.purgeCache)
	}

	return nr.server.Stop(ctx)
}

func (nr *NodeRunner) Ledger() *ledger.Ledger {
	return nr.ledger
}

func (nr *NodeRunner) Executor() *transaction.Executor {
	return nr.executor
}

func (nr *NodeRunner) Server() *network.Server {
	return nr.server
}

func (nr *NodeRunner) NodeInfo() node.NodeInfo {
	return nr.nodeInfo
}
