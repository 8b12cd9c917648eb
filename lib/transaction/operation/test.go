package operation

import (
	"boscoin.io/herehere/lib/common"
)

// TestMakeOperation makes a vote operation paying `fee` units; a negative
// fee pays the default vote price.
func TestMakeOperation(fee int, poll ...string) Operation {
	amount := common.DefaultVotePrice
	if fee >= 0 {
		amount = common.Amount(fee)
	}

	target := "component_TestPoll"
	if len(poll) > 0 {
		target = poll[0]
	}

	return MustNewOperation(NewVote(target, true, amount))
}
