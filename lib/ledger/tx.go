package ledger

import (
	"strings"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/storage"
)

const (
	ComponentAddressPrefix = "component_"
	AccountAddressPrefix   = "account_"

	nonceKey = "lg-nonce"
)

// Tx is the view of one ledger transaction given to the components.
type Tx struct {
	st       *storage.LevelDBBackend
	now      int64
	proofs   []credential.Proof
	config   common.Config
	readOnly bool
	events   []observer.Event
}

func newTx(st *storage.LevelDBBackend, now int64, proofs []credential.Proof, config common.Config, readOnly bool) *Tx {
	return &Tx{
		st:       st,
		now:      now,
		proofs:   proofs,
		config:   config,
		readOnly: readOnly,
	}
}

func (tx *Tx) Storage() *storage.LevelDBBackend {
	return tx.st
}

// Now is the ledger time in unix seconds; it is read once per transaction.
func (tx *Tx) Now() int64 {
	return tx.now
}

func (tx *Tx) Proofs() []credential.Proof {
	return tx.proofs
}

func (tx *Tx) NetworkID() []byte {
	return tx.config.NetworkID
}

func (tx *Tx) Config() common.Config {
	return tx.config
}

func (tx *Tx) IsReadOnly() bool {
	return tx.readOnly
}

// Emit queues an event; it is triggered after the transaction commits.
func (tx *Tx) Emit(e observer.Event) {
	tx.events = append(tx.events, e)
}

func (tx *Tx) Events() []observer.Event {
	return tx.events
}

func (tx *Tx) nextNonce() (nonce uint64, err error) {
	if err = tx.st.Get(nonceKey, &nonce); err != nil && err != errors.StorageRecordDoesNotExist {
		return
	}

	nonce++
	err = tx.st.Put(nonceKey, nonce)
	return
}

type addressSeed struct {
	NetworkID []byte
	Blueprint string
	Nonce     uint64
}

func (tx *Tx) allocateAddress(prefix, blueprint string) (string, error) {
	if tx.readOnly {
		return "", errors.New("address can not be allocated in read only transaction")
	}

	nonce, err := tx.nextNonce()
	if err != nil {
		return "", err
	}

	hashed, err := common.MakeObjectHash(addressSeed{
		NetworkID: tx.config.NetworkID,
		Blueprint: blueprint,
		Nonce:     nonce,
	})
	if err != nil {
		return "", err
	}

	return prefix + base58.Encode(hashed), nil
}

// AllocateComponentAddress reserves the address of a component before it is
// constructed, so it can refer to itself.
func (tx *Tx) AllocateComponentAddress(blueprint string) (string, error) {
	return tx.allocateAddress(ComponentAddressPrefix, blueprint)
}

func (tx *Tx) AllocateAccountAddress() (string, error) {
	return tx.allocateAddress(AccountAddressPrefix, "account")
}

func IsComponentAddress(address string) bool {
	return strings.HasPrefix(address, ComponentAddressPrefix)
}

func IsAccountAddress(address string) bool {
	return strings.HasPrefix(address, AccountAddressPrefix)
}
