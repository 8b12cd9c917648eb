package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/network/api/resource"
	"boscoin.io/herehere/lib/network/httputils"
	"boscoin.io/herehere/lib/poll"
)

func (api NetworkHandlerAPI) loadPoll(address string) (payload *resource.Poll, err error) {
	err = api.ledger.View(func(tx *ledger.Tx) error {
		p, err := poll.Load(tx, address)
		if err != nil {
			return err
		}
		payload = resource.NewPoll(p, tx.Now())
		return nil
	})
	return
}

// GetPollHandler shows the poll with its tally. With `text/event-stream`
// accepted, the poll is written again whenever a vote is cast on it.
func (api NetworkHandlerAPI) GetPollHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	payload, err := api.loadPoll(address)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	if httputils.IsEventStream(r) {
		event := observer.NewEvent(observer.EventVoteCast, address, nil).String()
		streaming(r, w, []string{event}, payload, func(observer.Event) (interface{}, error) {
			return api.loadPoll(address)
		})
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}

// GetPollBallotsHandler lists the ballots in the order they were cast.
func (api NetworkHandlerAPI) GetPollBallotsHandler(w http.ResponseWriter, r *http.Request) {
	address := mux.Vars(r)["id"]

	p, err := httputils.NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var rs []resource.Resource
	var firstCursor, lastCursor string
	err = api.ledger.View(func(tx *ledger.Tx) error {
		if _, err := poll.Load(tx, address); err != nil {
			return err
		}

		ballots, err := poll.GetBallots(tx, address, p.ListOptions())
		if err != nil {
			return err
		}

		for i, b := range ballots {
			if i == 0 {
				firstCursor = b.SequenceCursor()
			}
			lastCursor = b.SequenceCursor()
			rs = append(rs, resource.NewBallot(b))
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

func (api NetworkHandlerAPI) GetPollBallotHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var payload *resource.Ballot
	err := api.ledger.View(func(tx *ledger.Tx) error {
		if _, err := poll.Load(tx, vars["id"]); err != nil {
			return err
		}
		b, err := poll.GetBallot(tx, vars["id"], vars["voter"])
		if err != nil {
			return err
		}
		payload = resource.NewBallot(b)
		return nil
	})
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, http.StatusOK, payload)
}
