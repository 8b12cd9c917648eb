package transaction

import (
	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/poll"
	"boscoin.io/herehere/lib/registry"
	"boscoin.io/herehere/lib/transaction/operation"
	"boscoin.io/herehere/lib/vault"
)

// Executor applies the signed transactions to the ledger; one transaction is
// one ledger transaction, so a failing operation discards the others.
type Executor struct {
	ledger *ledger.Ledger
}

func NewExecutor(l *ledger.Ledger) *Executor {
	return &Executor{ledger: l}
}

func (e *Executor) Ledger() *ledger.Ledger {
	return e.ledger
}

func (e *Executor) Apply(t Transaction) (record Record, err error) {
	if err = t.IsWellFormed(e.ledger.Config()); err != nil {
		return
	}

	proof := t.Proof()
	err = e.ledger.Execute([]credential.Proof{proof}, func(tx *ledger.Tx) error {
		exists, err := tx.Storage().Has(GetRecordKey(t.H.Hash))
		if err != nil {
			return err
		} else if exists {
			return errors.TransactionAlreadyExists.Clone().SetData("hash", t.H.Hash)
		}

		record = Record{
			Hash:       t.H.Hash,
			Source:     t.B.Source,
			Nonce:      t.B.Nonce,
			Created:    t.H.Created,
			Confirmed:  tx.Now(),
			Operations: t.B.Operations,
		}

		for i, op := range t.B.Operations {
			result, err := apply(tx, t.B.Source, proof, op)
			if err != nil {
				if coded, ok := err.(*errors.Error); ok {
					err = coded.Clone().SetData("operation_index", i)
				}
				return err
			}
			record.Results = append(record.Results, result)
		}

		return tx.Storage().New(GetRecordKey(t.H.Hash), record)
	})

	if err != nil {
		log.Debug("transaction rejected", "hash", t.H.Hash, "error", err)
		return
	}

	log.Debug("transaction applied", "hash", t.H.Hash, "source", t.B.Source, "operations", len(t.B.Operations))
	return
}

func withdraw(tx *ledger.Tx, address, currency string, amount common.Amount) (*vault.Bucket, error) {
	ac, err := account.Load(tx, address)
	if err != nil {
		return nil, err
	}

	b, err := ac.Withdraw(currency, amount)
	if err != nil {
		return nil, err
	}

	return b, ac.Save(tx)
}

func deposit(tx *ledger.Tx, address string, b *vault.Bucket) error {
	if b.IsEmpty() {
		return nil
	}

	ac, err := account.Load(tx, address)
	if err != nil {
		return err
	}
	if err = ac.Deposit(b); err != nil {
		return err
	}

	return ac.Save(tx)
}

func apply(tx *ledger.Tx, source string, proof credential.Proof, op operation.Operation) (result Result, err error) {
	result.Type = op.H.Type

	switch body := op.B.(type) {
	case operation.InstantiateRegistry:
		var r *registry.Registry
		if r, err = registry.Instantiate(tx, credential.Require(body.Owner), body.Listing); err != nil {
			return
		}
		result.Address = r.Address

	case operation.CreatePoll:
		var payment *vault.Bucket
		if payment, err = withdraw(tx, source, body.GetCurrency(tx.Config()), body.Payment); err != nil {
			return
		}

		var r *registry.Registry
		if r, err = registry.Load(tx, body.Registry); err != nil {
			return
		}

		creator := body.Creator
		if len(creator) < 1 {
			creator = source
		}

		var change *vault.Bucket
		if change, err = r.CreateVote(tx, creator, body.Statement, body.EndTime, body.EligibilityAsset, payment); err != nil {
			return
		}

		var entry registry.Entry
		if entry, err = r.LastEntry(tx); err != nil {
			return
		}
		result.Address = entry.Address
		result.PollID = entry.PollID
		result.Amount = change.Amount

		err = deposit(tx, source, change)

	case operation.Vote:
		var fee *vault.Bucket
		if fee, err = withdraw(tx, source, body.GetCurrency(tx.Config()), body.Fee); err != nil {
			return
		}

		var p *poll.Poll
		if p, err = poll.Load(tx, body.Poll); err != nil {
			return
		}

		voter := body.Voter
		if len(voter) < 1 {
			voter = source
		} else if voter != source {
			// voting for another account needs its owner
			var rule credential.Rule
			if rule, err = account.OwnerRule(tx, voter); err != nil {
				if errors.Code(err) == errors.AccountNotFound.Code {
					err = errors.Unauthorized.Clone().SetData("voter", voter)
				}
				return
			}
			if err = credential.AssertSatisfies(tx.Proofs(), rule); err != nil {
				return
			}
		}

		if err = p.Vote(tx, voter, body.Choice, fee); err != nil {
			return
		}
		result.Address = p.Address

		err = deposit(tx, source, fee)

	case operation.WithdrawFee:
		var r *registry.Registry
		if r, err = registry.Load(tx, body.Registry); err != nil {
			return
		}

		var withdrawn *vault.Bucket
		if withdrawn, err = r.WithdrawFee(tx, proof); err != nil {
			return
		}
		result.Address = r.Address
		result.Amount = withdrawn.Amount

		err = deposit(tx, source, withdrawn)

	case operation.UpdateCost:
		var r *registry.Registry
		if r, err = registry.Load(tx, body.Registry); err != nil {
			return
		}
		if err = r.UpdateCost(tx, proof, body.Price); err != nil {
			return
		}
		result.Address = r.Address
		result.Amount = body.Price

	case operation.Transfer:
		var b *vault.Bucket
		if b, err = withdraw(tx, source, body.GetCurrency(tx.Config()), body.Amount); err != nil {
			return
		}
		result.Address = body.Target
		result.Amount = body.Amount

		err = deposit(tx, body.Target, b)

	default:
		err = errors.UnknownOperationType.Clone().SetData("type", string(op.H.Type))
	}

	return
}
