package transaction

import (
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/transaction/operation"
)

// TestMakeTransaction makes a transaction signed by `kp` with `count` vote
// operations on distinct polls.
func TestMakeTransaction(networkID []byte, kp *keypair.Full, nonce uint64, count int) Transaction {
	var ops []operation.Operation
	for i := 0; i < count; i++ {
		ops = append(ops, operation.TestMakeOperation(-1, "component_TestPoll"+string(rune('a'+i%26))+string(rune('a'+i/26))))
	}

	return TestMakeTransactionWithOperations(networkID, kp, nonce, ops...)
}

func TestMakeTransactionWithOperations(networkID []byte, kp *keypair.Full, nonce uint64, ops ...operation.Operation) Transaction {
	tx, err := NewTransaction(kp.Address(), nonce, ops...)
	if err != nil {
		panic(err)
	}
	tx.Sign(kp, networkID)

	return tx
}
