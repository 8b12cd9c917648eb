package api

import (
	"encoding/json"
	"io/ioutil"
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network/api/resource"
	"boscoin.io/herehere/lib/network/httputils"
	"boscoin.io/herehere/lib/transaction"
)

// PostTransactionHandler applies the posted transaction to the ledger and
// returns its record with the result of every operation.
func (api NetworkHandlerAPI) PostTransactionHandler(w http.ResponseWriter, r *http.Request) {
	body, err := ioutil.ReadAll(http.MaxBytesReader(w, r.Body, common.MaxTransactionBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var tx transaction.Transaction
	if err = json.Unmarshal(body, &tx); err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	record, err := api.executor.Apply(tx)
	if err != nil {
		log.Debug("transaction rejected", "hash", tx.GetHash(), "error", err)
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusCreated, resource.NewTransaction(record))
}

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	hash := mux.Vars(r)["id"]

	var payload *resource.Transaction
	err := api.ledger.View(func(tx *ledger.Tx) error {
		record, err := transaction.GetRecord(tx, hash)
		if err != nil {
			return err
		}
		payload = resource.NewTransaction(record)
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
