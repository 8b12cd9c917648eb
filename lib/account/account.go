// Package account keeps the identities of the ledger: their owner rule,
// balances per currency and metadata.
package account

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/credential"
	"boscoin.io/herehere/lib/errors"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/metadata"
	"boscoin.io/herehere/lib/vault"
)

type Account struct {
	Address string          `json:"address"`
	Owner   credential.Rule `json:"owner"`
	// OwnerLocked accounts keep their owner rule forever.
	OwnerLocked bool                     `json:"owner_locked,omitempty"`
	Balances    map[string]common.Amount `json:"balances"`
	Metadata    metadata.Metadata        `json:"metadata"`

	// Virtual is set for a public key which was never stored.
	Virtual bool `json:"-"`
}

func GetAccountKey(address string) string {
	return "ac-address-" + address
}

func newAccount(address string, owner credential.Rule) *Account {
	return &Account{
		Address:  address,
		Owner:    owner,
		Balances: map[string]common.Amount{},
		Metadata: metadata.Init(nil, metadata.OwnerRoles(owner), false),
	}
}

// Create provisions a new identity under an allocated address; the owner
// rule can be changed later by the owner.
func Create(tx *ledger.Tx, owner credential.Rule) (*Account, error) {
	if !owner.IsValid() {
		return nil, errors.InvalidAddress.Clone().SetData("owner", owner.String())
	}

	address, err := tx.AllocateAccountAddress()
	if err != nil {
		return nil, err
	}

	ac := newAccount(address, owner)
	if err = tx.Storage().New(GetAccountKey(address), ac); err != nil {
		return nil, err
	}

	return ac, nil
}

// Provision stores the account of a public key.
func Provision(tx *ledger.Tx, address string) (*Account, error) {
	if !keypair.IsValidAddress(address) {
		return nil, errors.InvalidAddress.Clone().SetData("address", address)
	}

	ac := newAccount(address, credential.Require(address))
	if err := tx.Storage().New(GetAccountKey(address), ac); err != nil {
		return nil, err
	}

	return ac, nil
}

func Exists(tx *ledger.Tx, address string) (bool, error) {
	return tx.Storage().Has(GetAccountKey(address))
}

// Load returns the stored account. A valid public key which was never
// stored is returned as an empty virtual account owned by its key.
func Load(tx *ledger.Tx, address string) (*Account, error) {
	var ac Account
	err := tx.Storage().Get(GetAccountKey(address), &ac)
	switch {
	case err == nil:
		if ac.Balances == nil {
			ac.Balances = map[string]common.Amount{}
		}
		return &ac, nil
	case err != errors.StorageRecordDoesNotExist:
		return nil, err
	case keypair.IsValidAddress(address):
		virtual := newAccount(address, credential.Require(address))
		virtual.Virtual = true
		return virtual, nil
	default:
		return nil, errors.AccountNotFound.Clone().SetData("address", address)
	}
}

// OwnerRule returns the rule guarding `address`.
func OwnerRule(tx *ledger.Tx, address string) (credential.Rule, error) {
	ac, err := Load(tx, address)
	if err != nil {
		return credential.Rule{}, err
	}

	return ac.Owner, nil
}

// Save stores the account, provisioning a virtual one.
func (ac *Account) Save(tx *ledger.Tx) error {
	if ac.Virtual {
		if err := tx.Storage().New(GetAccountKey(ac.Address), ac); err != nil {
			return err
		}
		ac.Virtual = false
		return nil
	}

	return tx.Storage().Set(GetAccountKey(ac.Address), ac)
}

func (ac *Account) Balance(currency string) common.Amount {
	return ac.Balances[currency]
}

func (ac *Account) Deposit(b *vault.Bucket) error {
	if b.IsEmpty() {
		return nil
	}

	amount, err := ac.Balances[b.Currency].Add(b.Amount)
	if err != nil {
		return err
	}

	ac.Balances[b.Currency] = amount
	b.Amount = 0
	return nil
}

// Withdraw takes `amount` of `currency` out of the account into a bucket.
func (ac *Account) Withdraw(currency string, amount common.Amount) (*vault.Bucket, error) {
	balance, err := ac.Balances[currency].Sub(amount)
	if err != nil {
		return nil, errors.AccountBalanceUnderZero.Clone().
			SetData("address", ac.Address).
			SetData("currency", currency).
			SetData("amount", amount.DecimalString())
	}

	if balance == 0 {
		delete(ac.Balances, currency)
	} else {
		ac.Balances[currency] = balance
	}

	return vault.NewBucket(currency, amount), nil
}

// SetOwner replaces the owner rule; the metadata roles follow it. With
// `lock` the rule can not be replaced again.
func (ac *Account) SetOwner(proofs []credential.Proof, owner credential.Rule, lock bool) error {
	if err := credential.AssertSatisfies(proofs, ac.Owner); err != nil {
		return err
	}
	if ac.OwnerLocked {
		return errors.Unauthorized.Clone().SetData("reason", "owner is locked")
	}
	if !owner.IsValid() {
		return errors.InvalidAddress.Clone().SetData("owner", owner.String())
	}

	ac.Owner = owner
	ac.OwnerLocked = lock
	ac.Metadata.SetRoles(metadata.OwnerRoles(owner))
	return nil
}

func (ac *Account) SetMetadata(proofs []credential.Proof, key string, values ...string) error {
	return ac.Metadata.Set(proofs, key, values...)
}
