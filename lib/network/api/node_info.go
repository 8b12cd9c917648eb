package api

import (
	"net/http"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network/httputils"
	"boscoin.io/herehere/lib/transaction"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	nodeInfo := api.nodeInfo

	err := api.ledger.View(func(tx *ledger.Tx) error {
		nodeInfo.Ledger.Time = common.UnixToISO8601(tx.Now())

		genesis, err := transaction.GetGenesis(tx)
		if err == errors.StorageRecordDoesNotExist {
			return nil
		} else if err != nil {
			return err
		}

		nodeInfo.Ledger.Owner = genesis.Owner
		nodeInfo.Ledger.Registry = genesis.Registry
		nodeInfo.Ledger.Listing = genesis.Listing
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, nodeInfo)
}
