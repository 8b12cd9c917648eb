package poll

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/ledger"
)

var log logging.Logger = logging.New("module", "poll")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)

	ledger.RegisterBlueprint(Blueprint, func(tx *ledger.Tx, address string) (ledger.Component, error) {
		return Load(tx, address)
	})
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	common.SetLogging(log, level, handler)
}
