package operation

import (
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/errors"
)

// CreatePoll buys a new poll from `Registry`, paying `Payment` from the
// source; the change goes back to the source. An empty `Creator` is the
// source itself.
type CreatePoll struct {
	Registry         string        `json:"registry"`
	Creator          string        `json:"creator,omitempty"`
	Statement        string        `json:"statement"`
	EndTime          int64         `json:"end_time"`
	EligibilityAsset string        `json:"eligibility_asset,omitempty"`
	Currency         string        `json:"currency,omitempty"`
	Payment          common.Amount `json:"payment"`
}

func NewCreatePoll(registry, statement string, endTime int64, eligibilityAsset string, payment common.Amount) CreatePoll {
	return CreatePoll{
		Registry:         registry,
		Statement:        statement,
		EndTime:          endTime,
		EligibilityAsset: eligibilityAsset,
		Payment:          payment,
	}
}

func (o CreatePoll) IsWellFormed(common.Config) error {
	if err := checkComponent("registry", o.Registry); err != nil {
		return err
	}
	if len(o.Creator) > 0 {
		if err := checkIdentity("creator", o.Creator); err != nil {
			return err
		}
	}
	if len(o.Statement) < 1 {
		return errors.OperationStatementEmpty
	}
	return nil
}

func (o CreatePoll) TargetAddress() string {
	return o.Registry
}

func (o CreatePoll) GetCurrency(conf common.Config) string {
	if len(o.Currency) > 0 {
		return o.Currency
	}
	return conf.SettlementCurrency
}

func (o CreatePoll) GetAmount() common.Amount {
	return o.Payment
}
