// Package poll records binary votes of identities until a deadline. A poll
// is created only by its registry, which is also paid the toll of every
// vote.
package poll

import (
	"fmt"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/vault"
)

const (
	Blueprint = "Aye"

	MetadataName        = "Here Here"
	MetadataDescription = "Will the ayes or the noes have it?"
)

// FeeCollector is the registry side of a vote; it validates and keeps the
// toll.
type FeeCollector interface {
	VoteFee(tx *ledger.Tx, fee *vault.Bucket) error
}

type Poll struct {
	Address          string `json:"address"`
	Statement        string `json:"statement"`
	EndTime          int64  `json:"end_time"`
	EligibilityAsset string `json:"eligibility_asset"`
	Creator          string `json:"creator"`
	Registry         string `json:"registry"`
	Listing          string `json:"listing"`

	AyeCount uint64 `json:"aye_count"`
	NoCount  uint64 `json:"no_count"`

	Metadata metadata.Metadata `json:"metadata"`
}

func GetPollKey(address string) string {
	return fmt.Sprintf("pl-address-%s", address)
}

func (p *Poll) ComponentAddress() string {
	return p.Address
}

func (p *Poll) Blueprint() string {
	return Blueprint
}

func (p *Poll) String() string {
	return string(common.MustMarshalJSON(p))
}

// Instantiate globalizes a new, empty poll. Its address is allocated before
// anything is stored.
func Instantiate(
	tx *ledger.Tx,
	endTime int64,
	creator string,
	eligibilityAsset string,
	statement string,
	registryAddress string,
	listing string,
) (*Poll, error) {
	address, err := tx.AllocateComponentAddress(Blueprint)
	if err != nil {
		return nil, err
	}

	p := &Poll{
		Address:          address,
		Statement:        statement,
		EndTime:          endTime,
		EligibilityAsset: eligibilityAsset,
		Creator:          creator,
		Registry:         registryAddress,
		Listing:          listing,
		Metadata: metadata.Init(
			map[string][]string{
				metadata.KeyName:           {MetadataName},
				metadata.KeyDescription:    {MetadataDescription},
				metadata.KeyDappDefinition: {listing},
				metadata.KeyIconURL:        {""},
			},
			metadata.LockedRoles(),
			true,
		),
	}

	if err = tx.Storage().New(GetPollKey(address), p); err != nil {
		return nil, err
	}
	if err = tx.Globalize(address, Blueprint); err != nil {
		return nil, err
	}

	log.Debug("poll instantiated", "address", address, "registry", registryAddress, "end-time", endTime)

	return p, nil
}

func Load(tx *ledger.Tx, address string) (*Poll, error) {
	var p Poll
	if err := tx.Storage().Get(GetPollKey(address), &p); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return nil, errors.ComponentNotFound.Clone().SetData("address", address)
		}
		return nil, err
	}

	return &p, nil
}

func (p *Poll) save(tx *ledger.Tx) error {
	return tx.Storage().Set(GetPollKey(p.Address), p)
}

// IsOpen is true while `now` is strictly before the end time.
func (p *Poll) IsOpen(now int64) bool {
	return now < p.EndTime
}

type Tally struct {
	Ayes  uint64 `json:"ayes"`
	Noes  uint64 `json:"noes"`
	Total uint64 `json:"total"`
}

func (p *Poll) Tally() Tally {
	return Tally{
		Ayes:  p.AyeCount,
		Noes:  p.NoCount,
		Total: p.AyeCount + p.NoCount,
	}
}

func (p *Poll) feeCollector(tx *ledger.Tx) (FeeCollector, error) {
	component, err := tx.Resolve(p.Registry)
	if err != nil {
		return nil, err
	}

	collector, ok := component.(FeeCollector)
	if !ok {
		return nil, errors.ComponentTypeMismatch.Clone().
			SetData("address", p.Registry).
			SetData("blueprint", component.Blueprint())
	}

	return collector, nil
}

// VoteCast is the payload of `observer.EventVoteCast`.
type VoteCast struct {
	Poll   string `json:"poll"`
	Voter  string `json:"voter"`
	Choice bool   `json:"choice"`
	At     int64  `json:"at"`
}

// Vote records `choice` of `voter`, paying `fee` to the registry. The order
// of the checks is fixed: the caller must own `voter`, the registry must
// accept the fee, the poll must be open and `voter` must not have voted.
func (p *Poll) Vote(tx *ledger.Tx, voter string, choice bool, fee *vault.Bucket) (err error) {
	defer func() {
		if err != nil {
			metrics.Poll.AddRejectedVote(rejectReason(err))
		}
	}()

	if err = authorizeVoter(tx, voter); err != nil {
		return
	}

	var collector FeeCollector
	if collector, err = p.feeCollector(tx); err != nil {
		return
	}
	if err = collector.VoteFee(tx, fee); err != nil {
		return
	}

	now := tx.Now()
	if !p.IsOpen(now) {
		err = errors.VotingClosed.Clone().
			SetData("end_time", p.EndTime).
			SetData("now", now)
		return
	}

	var voted bool
	if voted, err = HasVoted(tx, p.Address, voter); err != nil {
		return
	} else if voted {
		err = errors.AlreadyVoted.Clone().SetData("voter", voter)
		return
	}

	if err = p.checkEligibility(tx, voter); err != nil {
		return
	}

	if err = insertBallot(tx, p, voter, choice, now); err != nil {
		return
	}

	if choice {
		p.AyeCount++
	} else {
		p.NoCount++
	}
	if err = p.save(tx); err != nil {
		return
	}

	metrics.Poll.AddVote(choice)
	tx.Emit(observer.NewEvent(observer.EventVoteCast, p.Address, VoteCast{
		Poll:   p.Address,
		Voter:  voter,
		Choice: choice,
		At:     now,
	}))

	log.Debug("vote cast", "poll", p.Address, "voter", voter, "choice", choice)
	return
}

func rejectReason(err error) string {
	switch errors.Code(err) {
	case errors.Unauthorized.Code:
		return "unauthorized"
	case errors.InvalidCurrency.Code:
		return "invalid-currency"
	case errors.InsufficientPayment.Code:
		return "insufficient-payment"
	case errors.VotingClosed.Code:
		return "voting-closed"
	case errors.AlreadyVoted.Code:
		return "already-voted"
	case errors.NotEligible.Code:
		return "not-eligible"
	default:
		return "other"
	}
}
