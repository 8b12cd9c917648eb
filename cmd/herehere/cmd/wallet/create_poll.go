package wallet

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	libcommon "boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/transaction/operation"
)

var (
	CreatePollCmd *cobra.Command

	flagRegistry         string
	flagEnd              string = "24h"
	flagEligibilityAsset string
	flagPayment          string
)

func init() {
	CreatePollCmd = &cobra.Command{
		Use:   "create-poll <statement>",
		Short: "Buy a new poll from the registry",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			s := newSender(c)

			endTime, err := parseEndTime(flagEnd, time.Now())
			if err != nil {
				common.PrintFlagsError(c, "--end", err)
			}

			r := s.registry(c, flagRegistry)
			payment := parseAmount(c, "--payment", flagPayment, r.CreationPrice)

			s.submit(c, operation.NewCreatePoll(r.Address, args[0], endTime, flagEligibilityAsset, payment))
		},
	}

	addCommonFlags(CreatePollCmd)
	CreatePollCmd.Flags().StringVar(&flagRegistry, "registry", flagRegistry, "registry address; the registry of the node by default")
	CreatePollCmd.Flags().StringVar(&flagEnd, "end", flagEnd, "end of voting; duration from now or ISO8601 time")
	CreatePollCmd.Flags().StringVar(&flagEligibilityAsset, "eligibility-asset", flagEligibilityAsset, "only the holders of this currency can vote")
	CreatePollCmd.Flags().StringVar(&flagPayment, "payment", flagPayment, "payment for the creation; the creation price by default")
}

// parseEndTime accepts a duration from `now`, like `72h`, or ISO8601 time.
func parseEndTime(s string, now time.Time) (int64, error) {
	if d, err := time.ParseDuration(s); err == nil {
		if d <= 0 {
			return 0, fmt.Errorf("duration must be positive, %q", s)
		}
		return now.Add(d).Unix(), nil
	}

	t, err := libcommon.ParseISO8601(s)
	if err != nil {
		return 0, fmt.Errorf("expects duration or ISO8601 time, %q", s)
	}
	return t.Unix(), nil
}
