package poll

import (
	"fmt"

	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/storage"
)

// Ballot is the recorded decision of one voter. A voter has at most one
// ballot per poll, so nobody is in both the ayes and the noes.
type Ballot struct {
	Poll     string `json:"poll"`
	Voter    string `json:"voter"`
	Choice   bool   `json:"choice"`
	At       int64  `json:"at"`
	Sequence uint64 `json:"sequence"`
}

func (b Ballot) ChoiceString() string {
	if b.Choice {
		return "aye"
	}
	return "no"
}

func GetBallotKey(poll, voter string) string {
	return fmt.Sprintf("pl-ballot-%s-%s", poll, voter)
}

func GetBallotSequenceKeyPrefix(poll string) string {
	return fmt.Sprintf("pl-ballot-seq-%s-", poll)
}

func GetBallotSequenceKey(poll string, sequence uint64) string {
	return GetBallotSequenceKeyPrefix(poll) + common.SequenceKey(sequence)
}

// authorizeVoter asserts the caller presented a proof satisfying the owner
// rule of the voter identity.
func authorizeVoter(tx *ledger.Tx, voter string) error {
	rule, err := account.OwnerRule(tx, voter)
	if err != nil {
		if errors.Code(err) == errors.AccountNotFound.Code {
			return errors.Unauthorized.Clone().SetData("voter", voter)
		}
		return err
	}

	return credential.AssertSatisfies(tx.Proofs(), rule)
}

// checkEligibility requires the voter to hold the eligibility asset; a poll
// without one is open to everyone.
func (p *Poll) checkEligibility(tx *ledger.Tx, voter string) error {
	if len(p.EligibilityAsset) < 1 {
		return nil
	}

	ac, err := account.Load(tx, voter)
	if err != nil {
		return err
	}
	if ac.Balance(p.EligibilityAsset) < 1 {
		return errors.NotEligible.Clone().
			SetData("voter", voter).
			SetData("asset", p.EligibilityAsset)
	}

	return nil
}

func HasVoted(tx *ledger.Tx, poll, voter string) (bool, error) {
	return tx.Storage().Has(GetBallotKey(poll, voter))
}

func insertBallot(tx *ledger.Tx, p *Poll, voter string, choice bool, now int64) error {
	b := Ballot{
		Poll:     p.Address,
		Voter:    voter,
		Choice:   choice,
		At:       now,
		Sequence: p.AyeCount + p.NoCount + 1,
	}

	if err := tx.Storage().New(GetBallotKey(p.Address, voter), b); err != nil {
		if err == errors.StorageRecordAlreadyExists {
			return errors.AlreadyVoted.Clone().SetData("voter", voter)
		}
		return err
	}

	return tx.Storage().New(GetBallotSequenceKey(p.Address, b.Sequence), voter)
}

func GetBallot(tx *ledger.Tx, poll, voter string) (b Ballot, err error) {
	err = tx.Storage().Get(GetBallotKey(poll, voter), &b)
	return
}

// GetBallots lists the ballots in the order they were cast. The cursor of
// the options is the sequence of the last seen ballot.
func GetBallots(tx *ledger.Tx, poll string, options storage.ListOptions) (ballots []Ballot, err error) {
	prefix := GetBallotSequenceKeyPrefix(poll)

	if options != nil && len(options.Cursor()) > 0 {
		options.SetCursor([]byte(prefix + string(options.Cursor())))
	}

	iterFunc, closeFunc := tx.Storage().GetIterator(prefix, options)
	defer closeFunc()

	for {
		item, hasNext := iterFunc()
		if !hasNext {
			break
		}

		var voter string
		common.MustUnmarshalJSON(item.Value, &voter)

		var b Ballot
		if b, err = GetBallot(tx, poll, voter); err != nil {
			return
		}
		ballots = append(ballots, b)
	}

	return
}

// SequenceCursor is the cursor following `b` in `GetBallots`.
func (b Ballot) SequenceCursor() string {
	return common.SequenceKey(b.Sequence)
}
