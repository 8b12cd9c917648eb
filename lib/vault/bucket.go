// Package vault holds fungible resources. A `Bucket` is a transient
// container moved between calls, a `Vault` is kept inside the record of the
// component which owns it.
package vault

import (
	"fmt"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// Bucket moves its contents; once taken, the source bucket is left with
// what remains.
type Bucket struct {
	Currency string        `json:"currency"`
	Amount   common.Amount `json:"amount"`
}

func NewBucket(currency string, amount common.Amount) *Bucket {
	return &Bucket{Currency: currency, Amount: amount}
}

func (b *Bucket) String() string {
	return fmt.Sprintf("%s %s", b.Amount.DecimalString(), b.Currency)
}

func (b *Bucket) IsEmpty() bool {
	return b == nil || b.Amount == 0
}

// Take splits `amount` off into a new bucket.
func (b *Bucket) Take(amount common.Amount) (*Bucket, error) {
	if amount > b.Amount {
		return nil, errors.InsufficientPayment.Clone().
			SetData("required", amount.DecimalString()).
			SetData("given", b.Amount.DecimalString())
	}

	b.Amount -= amount
	return NewBucket(b.Currency, amount), nil
}

func (b *Bucket) TakeAll() *Bucket {
	taken := NewBucket(b.Currency, b.Amount)
	b.Amount = 0
	return taken
}

// Put moves the whole of `other` into this bucket.
func (b *Bucket) Put(other *Bucket) error {
	if other.IsEmpty() {
		return nil
	}
	if other.Currency != b.Currency {
		return errors.BucketCurrencyMismatch.Clone().
			SetData("expected", b.Currency).
			SetData("given", other.Currency)
	}

	amount, err := b.Amount.Add(other.Amount)
	if err != nil {
		return err
	}

	b.Amount = amount
	other.Amount = 0
	return nil
}

// CheckPayment fails unless the bucket holds at least `price` in `currency`.
func (b *Bucket) CheckPayment(currency string, price common.Amount) error {
	if b == nil || b.Currency != currency {
		given := ""
		if b != nil {
			given = b.Currency
		}
		return errors.InvalidCurrency.Clone().
			SetData("expected", currency).
			SetData("given", given)
	}

	if b.Amount < price {
		return errors.InsufficientPayment.Clone().
			SetData("required", price.DecimalString()).
			SetData("given", b.Amount.DecimalString())
	}

	return nil
}
