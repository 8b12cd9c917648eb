package operation

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// WithdrawFee drains the custody of `Registry` into the source account.
type WithdrawFee struct {
	Registry string `json:"registry"`
}

func NewWithdrawFee(registry string) WithdrawFee {
	return WithdrawFee{Registry: registry}
}

func (o WithdrawFee) IsWellFormed(common.Config) error {
	return checkComponent("registry", o.Registry)
}

func (o WithdrawFee) TargetAddress() string {
	return o.Registry
}

// UpdateCost sets the creation price of `Registry`. Zero makes polls free.
type UpdateCost struct {
	Registry string        `json:"registry"`
	Price    common.Amount `json:"price"`
}

func NewUpdateCost(registry string, price common.Amount) UpdateCost {
	return UpdateCost{Registry: registry, Price: price}
}

func (o UpdateCost) IsWellFormed(common.Config) error {
	if err := checkComponent("registry", o.Registry); err != nil {
		return err
	}
	if o.Price > common.MaximumBalance {
		return errors.MaximumBalanceReached
	}
	return nil
}

func (o UpdateCost) TargetAddress() string {
	return o.Registry
}
