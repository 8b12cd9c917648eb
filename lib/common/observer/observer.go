package observer

import (
	"github.com/GianlucaGuarini/go-observable"
)

// LedgerObserver receives the events of the committed ledger transactions.
var LedgerObserver = observable.New()

const (
	EventPollCreated  = "poll-created"
	EventVoteCast     = "vote-cast"
	EventFeeWithdrawn = "fee-withdrawn"
	EventCostUpdated  = "cost-updated"

	// EventLedgerCommitted follows the events of every committed ledger
	// transaction; the payload is the ledger time of it.
	EventLedgerCommitted = "ledger-committed"

	ConditionAll = "*"
)

// Event is delivered with the name of the event and, as a condition, the
// address of the component which emitted it.
type Event struct {
	Name      string      `json:"name"`
	Condition string      `json:"condition"`
	Payload   interface{} `json:"payload"`
}

func NewEvent(name, condition string, payload interface{}) Event {
	return Event{
		Name:      name,
		Condition: condition,
		Payload:   payload,
	}
}

func (e Event) String() string {
	toStr := e.Name + "-"
	if e.Condition == ConditionAll {
		toStr += e.Condition
	} else {
		toStr += "address=" + e.Condition
	}
	return toStr
}

// Trigger fires `e` under both its own name and its address bound name.
func Trigger(e Event) {
	LedgerObserver.Trigger(NewEvent(e.Name, ConditionAll, nil).String(), e)
	if e.Condition != ConditionAll {
		LedgerObserver.Trigger(e.String(), e)
	}
}
