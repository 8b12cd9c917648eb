package vault

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// Vault accepts only its own currency.
type Vault struct {
	Currency string        `json:"currency"`
	Amount   common.Amount `json:"amount"`
}

func NewVault(currency string) Vault {
	return Vault{Currency: currency}
}

func (v Vault) Balance() common.Amount {
	return v.Amount
}

// Put deposits the whole bucket; the bucket is left empty.
func (v *Vault) Put(b *Bucket) error {
	if b == nil {
		return nil
	}
	if b.Currency != v.Currency {
		return errors.InvalidCurrency.Clone().
			SetData("expected", v.Currency).
			SetData("given", b.Currency)
	}

	amount, err := v.Amount.Add(b.Amount)
	if err != nil {
		return err
	}

	v.Amount = amount
	b.Amount = 0
	return nil
}

// TakeAll empties the vault into a new bucket.
func (v *Vault) TakeAll() *Bucket {
	b := NewBucket(v.Currency, v.Amount)
	v.Amount = 0
	return b
}
