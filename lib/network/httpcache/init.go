package httpcache

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/herehere/lib/common"
)

var log logging.Logger = logging.New("module", "httpcache")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}
