package wallet

import (
	"fmt"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/transaction/operation"
)

var (
	VoteCmd *cobra.Command

	flagVoter string
	flagFee   string
)

func init() {
	VoteCmd = &cobra.Command{
		Use:   "vote <poll address> {aye|no}",
		Short: "Cast a vote, paying the toll",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			choice, err := parseChoice(args[1])
			if err != nil {
				common.PrintFlagsError(c, "<choice>", err)
			}

			s := newSender(c)

			fee := flagFee
			if len(fee) < 1 {
				poll, err := s.client.LoadPoll(args[0])
				if err != nil {
					common.PrintError(c, err)
				}
				fee = s.registry(c, poll.Registry).VotePrice
			}

			vote := operation.NewVote(args[0], choice, parseAmount(c, "--fee", fee, ""))
			vote.Voter = flagVoter

			s.submit(c, vote)
		},
	}

	addCommonFlags(VoteCmd)
	VoteCmd.Flags().StringVar(&flagVoter, "voter", flagVoter, "vote on behalf of this account")
	VoteCmd.Flags().StringVar(&flagFee, "fee", flagFee, "toll for the vote; the vote price of the registry by default")
}

func parseChoice(s string) (bool, error) {
	switch s {
	case "aye", "yes", "y":
		return true, nil
	case "no", "nay", "n":
		return false, nil
	default:
		return false, fmt.Errorf("expects 'aye' or 'no', %q", s)
	}
}
