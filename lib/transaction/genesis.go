package transaction

import (
	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/poll"
	"boscoin.io/herehere/lib/registry"
	"boscoin.io/herehere/lib/vault"
)

const genesisKey = "genesis"

// Genesis funds the first account and instantiates the registry it owns.
// It can be made only once per storage.
type Genesis struct {
	Owner    string        `json:"owner"`
	Balance  common.Amount `json:"balance"`
	Registry string        `json:"registry"`
	Listing  string        `json:"listing"`
	Created  int64         `json:"created"`
}

func MakeGenesis(l *ledger.Ledger, owner string, balance common.Amount) (g Genesis, err error) {
	err = l.Execute(nil, func(tx *ledger.Tx) error {
		exists, err := tx.Storage().Has(genesisKey)
		if err != nil {
			return err
		} else if exists {
			return errors.GenesisAlreadyExists
		}

		ac, err := account.Provision(tx, owner)
		if err != nil {
			return err
		}
		if err = ac.Deposit(vault.NewBucket(tx.Config().SettlementCurrency, balance)); err != nil {
			return err
		}
		if err = ac.Save(tx); err != nil {
			return err
		}

		// the registry listing is managed by the owner
		ownerRule := credential.Require(owner)
		listing, err := account.Create(tx, ownerRule)
		if err != nil {
			return err
		}

		r, err := registry.Instantiate(tx, ownerRule, listing.Address)
		if err != nil {
			return err
		}

		ownerProofs := []credential.Proof{{Address: owner}}
		for key, values := range map[string][]string{
			metadata.KeyAccountType:     {registry.ListingAccountType},
			metadata.KeyName:            {poll.MetadataName},
			metadata.KeyDescription:     {poll.MetadataDescription},
			metadata.KeyIconURL:         {registry.IconURL},
			metadata.KeyClaimedEntities: {r.Address},
		} {
			if err = listing.SetMetadata(ownerProofs, key, values...); err != nil {
				return err
			}
		}
		if err = listing.Save(tx); err != nil {
			return err
		}

		g = Genesis{
			Owner:    owner,
			Balance:  balance,
			Registry: r.Address,
			Listing:  listing.Address,
			Created:  tx.Now(),
		}
		return tx.Storage().New(genesisKey, g)
	})

	if err == nil {
		log.Info("genesis made", "owner", owner, "registry", g.Registry, "balance", balance)
	}
	return
}

func GetGenesis(tx *ledger.Tx) (g Genesis, err error) {
	err = tx.Storage().Get(genesisKey, &g)
	return
}
