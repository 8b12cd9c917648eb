package operation

import (
	"boscoin.io/herehere/lib/common"
)

// Vote casts `Choice` of `Voter`, an empty voter is the source. The toll is
// paid from the source.
type Vote struct {
	Poll     string        `json:"poll"`
	Voter    string        `json:"voter,omitempty"`
	Choice   bool          `json:"choice"`
	Currency string        `json:"currency,omitempty"`
	Fee      common.Amount `json:"fee"`
}

func NewVote(poll string, choice bool, fee common.Amount) Vote {
	return Vote{Poll: poll, Choice: choice, Fee: fee}
}

func (o Vote) IsWellFormed(common.Config) error {
	if err := checkComponent("poll", o.Poll); err != nil {
		return err
	}
	if len(o.Voter) > 0 {
		if err := checkIdentity("voter", o.Voter); err != nil {
			return err
		}
	}

	return nil
}

func (o Vote) TargetAddress() string {
	return o.Poll
}

func (o Vote) GetCurrency(conf common.Config) string {
	if len(o.Currency) > 0 {
		return o.Currency
	}
	return conf.SettlementCurrency
}

func (o Vote) GetAmount() common.Amount {
	return o.Fee
}
