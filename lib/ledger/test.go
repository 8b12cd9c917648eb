package ledger

import (
	"time"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/storage"
)

// NewTestLedger returns a ledger over a memory storage with a fixed clock.
func NewTestLedger(now time.Time) (*Ledger, *FixedClock) {
	clock := NewFixedClock(now)
	return New(storage.NewTestStorage(), clock, common.NewTestConfig()), clock
}
