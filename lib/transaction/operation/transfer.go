package operation

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// Transfer moves `Amount` of `Currency` from the source to `Target`.
type Transfer struct {
	Target   string        `json:"target"`
	Currency string        `json:"currency,omitempty"`
	Amount   common.Amount `json:"amount"`
}

func NewTransfer(target string, currency string, amount common.Amount) Transfer {
	return Transfer{Target: target, Currency: currency, Amount: amount}
}

func (o Transfer) IsWellFormed(common.Config) error {
	if err := checkIdentity("target", o.Target); err != nil {
		return err
	}
	if o.Amount < 1 {
		return errors.OperationAmountUnderflow
	}

	return nil
}

func (o Transfer) TargetAddress() string {
	return o.Target
}

func (o Transfer) GetCurrency(conf common.Config) string {
	if len(o.Currency) > 0 {
		return o.Currency
	}
	return conf.SettlementCurrency
}

func (o Transfer) GetAmount() common.Amount {
	return o.Amount
}
