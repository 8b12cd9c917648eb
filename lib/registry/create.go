package registry

import (
	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/observer"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/metrics"
	"boscoin.io/herehere/lib/poll"
	"boscoin.io/herehere/lib/vault"
)

const ListingAccountType = "dapp definition"

// PollCreated is the payload of `observer.EventPollCreated`.
type PollCreated struct {
	Registry  string `json:"registry"`
	PollID    uint64 `json:"poll_id"`
	Creator   string `json:"creator"`
	Statement string `json:"statement"`
	EndTime   int64  `json:"end_time"`
	Address   string `json:"address"`
}

type FeeWithdrawn struct {
	Registry string        `json:"registry"`
	Amount   common.Amount `json:"amount"`
}

type CostUpdated struct {
	Registry      string        `json:"registry"`
	CreationPrice common.Amount `json:"creation_price"`
}

// CreateVote sells a new poll. Exactly the creation price is kept in
// custody and the rest of the payment is returned as change. The poll gets
// its own listing identity, handed over to the registry owner once it
// claims the poll.
func (r *Registry) CreateVote(
	tx *ledger.Tx,
	creator string,
	statement string,
	endTime int64,
	eligibilityAsset string,
	payment *vault.Bucket,
) (*vault.Bucket, error) {
	if err := payment.CheckPayment(r.Custody.Currency, r.CreationPrice); err != nil {
		return nil, err
	}

	fee, err := payment.Take(r.CreationPrice)
	if err != nil {
		return nil, err
	}
	if err = r.Custody.Put(fee); err != nil {
		return nil, err
	}

	// the listing is open to anyone until the poll is claimed
	listing, err := account.Create(tx, credential.AllowAll())
	if err != nil {
		return nil, err
	}
	for key, value := range map[string]string{
		metadata.KeyAccountType: ListingAccountType,
		metadata.KeyName:        poll.MetadataName,
		metadata.KeyDescription: poll.MetadataDescription,
		metadata.KeyIconURL:     IconURL,
	} {
		if err = listing.SetMetadata(nil, key, value); err != nil {
			return nil, err
		}
	}

	r.NextPollID++
	pollID := r.NextPollID

	p, err := poll.Instantiate(tx, endTime, creator, eligibilityAsset, statement, r.Address, listing.Address)
	if err != nil {
		return nil, err
	}

	if err = listing.SetMetadata(nil, metadata.KeyClaimedEntities, p.Address); err != nil {
		return nil, err
	}
	if err = listing.SetOwner(nil, r.Owner, true); err != nil {
		return nil, err
	}
	if err = listing.Save(tx); err != nil {
		return nil, err
	}

	entry := Entry{
		Registry:         r.Address,
		PollID:           pollID,
		Statement:        statement,
		EligibilityAsset: eligibilityAsset,
		EndTime:          endTime,
		Address:          p.Address,
	}
	if err = insertEntry(tx, entry); err != nil {
		return nil, err
	}

	if err = r.save(tx); err != nil {
		return nil, err
	}

	metrics.Registry.AddPollCreated(r.Address)
	metrics.Registry.AddFee(r.Address, r.CreationPrice, r.Custodied())
	tx.Emit(observer.NewEvent(observer.EventPollCreated, r.Address, PollCreated{
		Registry:  r.Address,
		PollID:    pollID,
		Creator:   creator,
		Statement: statement,
		EndTime:   endTime,
		Address:   p.Address,
	}))

	log.Debug("poll created", "registry", r.Address, "poll-id", pollID, "poll", p.Address)

	return payment, nil
}

// LastEntry is the entry of the most recently created poll.
func (r *Registry) LastEntry(tx *ledger.Tx) (Entry, error) {
	if r.NextPollID < 1 {
		return Entry{}, errors.PollNotFound.Clone().SetData("registry", r.Address)
	}
	return GetEntry(tx, r.Address, r.NextPollID)
}
