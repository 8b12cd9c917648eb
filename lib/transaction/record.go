package transaction

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/transaction/operation"
)

// Record is kept for every applied transaction; its key doubles as the
// replay guard.
type Record struct {
	Hash       string                `json:"hash"`
	Source     string                `json:"source"`
	Nonce      uint64                `json:"nonce"`
	Created    string                `json:"created"`
	Confirmed  int64                 `json:"confirmed"`
	Operations []operation.Operation `json:"operations"`
	Results    []Result              `json:"results"`
}

// Result tells what an operation produced: the address of a created
// component, the id of a created poll, the change or the withdrawn fees.
type Result struct {
	Type    operation.OperationType `json:"type"`
	Address string                  `json:"address,omitempty"`
	PollID  uint64                  `json:"poll_id,omitempty"`
	Amount  common.Amount           `json:"amount"`
}

func GetRecordKey(hash string) string {
	return "tx-hash-" + hash
}

func GetRecord(tx *ledger.Tx, hash string) (r Record, err error) {
	if err = tx.Storage().Get(GetRecordKey(hash), &r); err == errors.StorageRecordDoesNotExist {
		err = errors.StorageRecordDoesNotExist.Clone().SetData("hash", hash)
	}
	return
}
