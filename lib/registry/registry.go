// Package registry sells the creation of polls and keeps, in its custody,
// the creation fees and the tolls paid for every vote.
package registry

import (
	"fmt"

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

const (
	Blueprint = "Here"

	IconURL = "https://e3.365dm.com/23/09/2048x1152/skynews-john-bercow-speaker_6293239.jpg"
)

type Registry struct {
	Address       string            `json:"address"`
	Owner         credential.Rule   `json:"owner"`
	NextPollID    uint64            `json:"next_poll_id"`
	Custody       vault.Vault       `json:"custody"`
	CreationPrice common.Amount     `json:"creation_price"`
	VotePrice     common.Amount     `json:"vote_price"`
	Listing       string            `json:"listing"`
	Metadata      metadata.Metadata `json:"metadata"`
}

func GetRegistryKey(address string) string {
	return fmt.Sprintf("rg-address-%s", address)
}

func (r *Registry) ComponentAddress() string {
	return r.Address
}

func (r *Registry) Blueprint() string {
	return Blueprint
}

func (r *Registry) String() string {
	return string(common.MustMarshalJSON(r))
}

// Instantiate globalizes a new registry with an empty directory, an empty
// custody in the settlement currency and the default prices of the ledger
// config. The metadata is locked for good.
func Instantiate(tx *ledger.Tx, owner credential.Rule, listing string) (*Registry, error) {
	if !owner.IsValid() {
		return nil, errors.InvalidAddress.Clone().SetData("owner", owner.String())
	}

	address, err := tx.AllocateComponentAddress(Blueprint)
	if err != nil {
		return nil, err
	}

	config := tx.Config()
	r := &Registry{
		Address:       address,
		Owner:         owner,
		Custody:       vault.NewVault(config.SettlementCurrency),
		CreationPrice: config.CreationPrice,
		VotePrice:     config.VotePrice,
		Listing:       listing,
		Metadata: metadata.Init(
			map[string][]string{
				metadata.KeyName:           {poll.MetadataName},
				metadata.KeyDescription:    {poll.MetadataDescription},
				metadata.KeyDappDefinition: {listing},
				metadata.KeyIconURL:        {IconURL},
			},
			metadata.LockedRoles(),
			true,
		),
	}

	if err = tx.Storage().New(GetRegistryKey(address), r); err != nil {
		return nil, err
	}
	if err = tx.Globalize(address, Blueprint); err != nil {
		return nil, err
	}

	metrics.Registry.SetCreationPrice(address, r.CreationPrice)
	log.Debug("registry instantiated", "address", address, "owner", owner)

	return r, nil
}

func Load(tx *ledger.Tx, address string) (*Registry, error) {
	var r Registry
	if err := tx.Storage().Get(GetRegistryKey(address), &r); err != nil {
		if err == errors.StorageRecordDoesNotExist {
			return nil, errors.ComponentNotFound.Clone().SetData("address", address)
		}
		return nil, err
	}

	return &r, nil
}

func (r *Registry) save(tx *ledger.Tx) error {
	return tx.Storage().Set(GetRegistryKey(r.Address), r)
}

func (r *Registry) Custodied() common.Amount {
	return r.Custody.Balance()
}

// WithdrawFee empties the custody into the returned bucket. Only a proof
// presented to `tx` and satisfying the owner rule is accepted.
func (r *Registry) WithdrawFee(tx *ledger.Tx, proof credential.Proof) (*vault.Bucket, error) {
	if err := credential.CheckPresented(tx.Proofs(), proof, r.Owner, tx.NetworkID()); err != nil {
		return nil, err
	}

	withdrawn := r.Custody.TakeAll()
	if err := r.save(tx); err != nil {
		return nil, err
	}

	metrics.Registry.AddWithdrawal(r.Address, withdrawn.Amount)
	tx.Emit(observer.NewEvent(observer.EventFeeWithdrawn, r.Address, FeeWithdrawn{
		Registry: r.Address,
		Amount:   withdrawn.Amount,
	}))

	return withdrawn, nil
}

// UpdateCost replaces the price of creating a poll. The vote price never
// changes.
func (r *Registry) UpdateCost(tx *ledger.Tx, proof credential.Proof, price common.Amount) error {
	if err := credential.CheckPresented(tx.Proofs(), proof, r.Owner, tx.NetworkID()); err != nil {
		return err
	}
	if price > common.MaximumBalance {
		return errors.MaximumBalanceReached.Clone().SetData("price", uint64(price))
	}

	r.CreationPrice = price
	if err := r.save(tx); err != nil {
		return err
	}

	metrics.Registry.SetCreationPrice(r.Address, price)
	tx.Emit(observer.NewEvent(observer.EventCostUpdated, r.Address, CostUpdated{
		Registry:      r.Address,
		CreationPrice: price,
	}))

	return nil
}

// VoteFee takes the whole bucket into custody when it holds at least the
// vote price in the settlement currency.
func (r *Registry) VoteFee(tx *ledger.Tx, fee *vault.Bucket) error {
	if err := fee.CheckPayment(r.Custody.Currency, r.VotePrice); err != nil {
		return err
	}

	amount := fee.Amount
	if err := r.Custody.Put(fee); err != nil {
		return err
	}
	if err := r.save(tx); err != nil {
		return err
	}

	metrics.Registry.AddFee(r.Address, amount, r.Custodied())
	return nil
}
