package resource

import (
	"github.com/nvellon/hal"

	"boscoin.io/herehere/lib/account"
	"boscoin.io/herehere/lib/common"
)

type Account struct {
	ac *account.Account
}

func NewAccount(ac *account.Account) *Account {
	return &Account{ac: ac}
}

func (a Account) GetMap() hal.Entry {
	balances := map[string]string{}
	for currency, amount := range a.ac.Balances {
		balances[currency] = amount.DecimalString()
	}

	metadata := map[string][]string{}
	for _, key := range a.ac.Metadata.Keys() {
		entry, _ := a.ac.Metadata.Get(key)
		metadata[key] = entry.Values
	}

	return hal.Entry{
		"address":      a.ac.Address,
		"owner":        a.ac.Owner.String(),
		"owner_locked": a.ac.OwnerLocked,
		"balances":     balances,
		"metadata":     metadata,
		"virtual":      a.ac.Virtual,
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return expandURL(URLAccounts, "id", a.ac.Address)
}

func (a Account) MarshalJSON() ([]byte, error) {
	return common.JSONMarshalWithoutEscapeHTML(a.Resource().GetMap())
}
