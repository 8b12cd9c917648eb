package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network/api/resource"
	"boscoin.io/herehere/lib/network/httputils"
)

// GetAccountHandler shows the account; a public key which never received
// anything is shown as a virtual account.
func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	var payload *resource.Account
	err := api.ledger.View(func(tx *ledger.Tx) error {
		ac, err := account.Load(tx, address)
		if err != nil {
			return err
		}
		payload = resource.NewAccount(ac)
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
