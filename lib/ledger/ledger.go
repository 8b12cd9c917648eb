// Package ledger runs every state change in one atomic, serialized
// transaction over the leveldb storage, and gives the components their time
// oracle, addresses and the proofs presented by the caller.
package ledger

import (
	"sync"
	"time"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/storage"
)

type Ledger struct {
	sync.Mutex

	st     *storage.LevelDBBackend
	clock  Clock
	config common.Config
}

func New(st *storage.LevelDBBackend, clock Clock, config common.Config) *Ledger {
	if clock == nil {
		clock = SystemClock{}
	}

	return &Ledger{
		st:     st,
		clock:  clock,
		config: config,
	}
}

func (l *Ledger) Config() common.Config {
	return l.config
}

func (l *Ledger) Storage() *storage.LevelDBBackend {
	return l.st
}

func (l *Ledger) Clock() Clock {
	return l.clock
}

// Execute runs `fn` in a new ledger transaction. The proofs are verified
// before anything runs; an error from `fn` discards every write. Events
// emitted by `fn` are triggered only after the commit.
func (l *Ledger) Execute(proofs []credential.Proof, fn func(*Tx) error) (err error) {
	for _, p := range proofs {
		if err = p.Verify(l.config.NetworkID); err != nil {
			return
		}
	}

	l.Lock()
	defer l.Unlock()

	begin := time.Now()
	defer func() {
		metrics.Ledger.ObserveTransaction(begin, err == nil)
	}()

	var ts *storage.LevelDBBackend
	if ts, err = l.st.OpenTransaction(); err != nil {
		return
	}

	tx := newTx(ts, l.clock.Now().Unix(), proofs, l.config, false)
	if err = fn(tx); err != nil {
		log.Debug("ledger transaction discarded", "error", err)
		if dErr := ts.Discard(); dErr != nil {
			log.Error("failed to discard", "error", dErr)
		}
		return
	}

	if err = ts.Commit(); err != nil {
		log.Error("failed to commit", "error", err)
		return
	}

	for _, e := range tx.events {
		observer.Trigger(e)
	}
	observer.Trigger(observer.NewEvent(observer.EventLedgerCommitted, observer.ConditionAll, tx.Now()))

	return
}

// View runs `fn` against the committed state; writes are refused.
func (l *Ledger) View(fn func(*Tx) error) error {
	return fn(newTx(l.st, l.clock.Now().Unix(), nil, l.config, true))
}
