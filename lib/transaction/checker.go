package transaction

import (
	"fmt"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/transaction/operation"
)

type Checker struct {
	common.DefaultChecker

	Config      common.Config
	Transaction Transaction
}

func CheckSource(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)
	if !keypair.IsValidAddress(checker.Transaction.B.Source) {
		err = errors.TransactionInvalidSource.Clone().SetData("source", checker.Transaction.B.Source)
		return
	}

	return
}

func CheckOverOperationsLimit(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if len(checker.Transaction.B.Operations) < 1 {
		err = errors.TransactionEmptyOperations
		return
	}
	if len(checker.Transaction.B.Operations) > checker.Config.OpsLimit {
		err = errors.TransactionExcessOperations
		return
	}

	return
}

func CheckOperations(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	var hashes []string
	for _, op := range checker.Transaction.B.Operations {
		if op.B == nil || !operation.IsValidOperationType(string(op.H.Type)) {
			err = errors.UnknownOperationType.Clone().SetData("type", string(op.H.Type))
			return
		}
		if err = op.IsWellFormed(checker.Config); err != nil {
			return
		}

		// one vote per poll in a transaction
		if vote, ok := op.B.(operation.Vote); ok {
			voter := vote.Voter
			if len(voter) < 1 {
				voter = checker.Transaction.B.Source
			}
			u := fmt.Sprintf("%s-%s-%s", op.H.Type, vote.Poll, voter)
			if _, found := common.InStringArray(hashes, u); found {
				err = errors.TransactionDuplicatedOperation
				return
			}
			hashes = append(hashes, u)
		}
	}

	return
}

func CheckHash(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if checker.Transaction.H.Hash != checker.Transaction.B.MakeHashString() {
		err = errors.TransactionInvalidHash
		return
	}

	return
}

func CheckVerifySignature(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*Checker)

	if err = checker.Transaction.Proof().Verify(checker.Config.NetworkID); err != nil {
		err = errors.TransactionInvalidSignature
		return
	}

	return
}
