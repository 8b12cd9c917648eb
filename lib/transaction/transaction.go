package transaction

import (
	"encoding/json"

	"github.com/btcsuite/btcutil/base58"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/transaction/operation"
)

const Version = "1"

type Transaction struct {
	H Header
	B Body
}

type Header struct {
	Version   string `json:"version"`
	Created   string `json:"created"`
	Hash      string `json:"hash"`
	Signature string `json:"signature"`
}

type Body struct {
	Source     string                `json:"source"`
	Nonce      uint64                `json:"nonce"`
	Operations []operation.Operation `json:"operations"`
}

// MakeHash hashes the json encoding of the body; the operations carry
// signed integers which rlp can not encode.
func (tb Body) MakeHash() []byte {
	b, err := common.MakeJSONHash(tb)
	if err != nil {
		panic(err)
	}
	return b
}

func (tb Body) MakeHashString() string {
	return base58.Encode(tb.MakeHash())
}

func NewTransaction(source string, nonce uint64, ops ...operation.Operation) (tx Transaction, err error) {
	if len(ops) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}

	body := Body{
		Source:     source,
		Nonce:      nonce,
		Operations: ops,
	}

	tx = Transaction{
		H: Header{
			Version: Version,
			Created: common.NowISO8601(),
			Hash:    body.MakeHashString(),
		},
		B: body,
	}

	return
}

var WellFormedCheckerFuncs = []common.CheckerFunc{
	CheckOverOperationsLimit,
	CheckSource,
	CheckOperations,
	CheckHash,
	CheckVerifySignature,
}

func (tx Transaction) IsWellFormed(conf common.Config) (err error) {
	checker := &Checker{
		DefaultChecker: common.DefaultChecker{Funcs: WellFormedCheckerFuncs},
		Config:         conf,
		Transaction:    tx,
	}
	err = common.RunChecker(checker, func(i int, _ common.Checker, err error) {
		if err != nil {
			log.Debug(
				"transaction is not well-formed",
				"check", common.CheckerFuncName(WellFormedCheckerFuncs[i]),
				"hash", tx.H.Hash,
				"error", err,
			)
		}
	})

	return
}

func (tx Transaction) GetHash() string {
	return tx.H.Hash
}

func (tx Transaction) Source() string {
	return tx.B.Source
}

// Proof is the signature of the source over the hash; it is what the
// components see as the credential of the caller.
func (tx Transaction) Proof() credential.Proof {
	return credential.Proof{
		Address:   tx.B.Source,
		Message:   tx.H.Hash,
		Signature: tx.H.Signature,
	}
}

func (tx Transaction) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(tx)
	return
}

func (tx Transaction) String() string {
	encoded, _ := json.MarshalIndent(tx, "", "  ")
	return string(encoded)
}

func (tx *Transaction) Sign(kp keypair.KP, networkID []byte) {
	tx.H.Hash = tx.B.MakeHashString()
	signature, _ := keypair.MakeSignature(kp, networkID, tx.H.Hash)

	tx.H.Signature = base58.Encode(signature)
}
