package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network/api/resource"
	"boscoin.io/herehere/lib/network/httputils"
	"boscoin.io/herehere/lib/registry"
)

func (api NetworkHandlerAPI) GetRegistryHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	var payload *resource.Registry
	err := api.ledger.View(func(tx *ledger.Tx) error {
		rg, err := registry.Load(tx, address)
		if err != nil {
			return err
		}
		payload = resource.NewRegistry(rg)
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}

// GetRegistryPollsHandler lists the directory of the registry by poll id;
// the cursor is the last poll id seen.
func (api NetworkHandlerAPI) GetRegistryPollsHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var firstCursor, lastCursor string
	err = api.ledger.View(func(tx *ledger.Tx) error {
		if _, err := registry.Load(tx, address); err != nil {
			return err
		}

		entries, err := registry.GetEntries(tx, address, p.ListOptions())
		if err != nil {
			return err
		}

		for i, e := range entries {
			cursor := strconv.FormatUint(e.PollID, 10)
			if i == 0 {
				firstCursor = cursor
			}
			lastCursor = cursor
			rs = append(rs, resource.NewEntry(e))
		}
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	list := resource.NewResourceList(rs, p.SelfLink(), p.NextLink(lastCursor), p.PrevLink(firstCursor))
	httputils.MustWriteJSON(w, http.StatusOK, list)
}

func (api NetworkHandlerAPI) GetRegistryPollHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	pollID, err := strconv.ParseUint(vars["pollID"], 10, 64)
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("pollID", vars["pollID"]))
		return
	}

	var payload *resource.Entry
	err = api.ledger.View(func(tx *ledger.Tx) error {
		e, err := registry.GetEntry(tx, address, pollID)
		if err != nil {
			return err
		}
		payload = resource.NewEntry(e)
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
