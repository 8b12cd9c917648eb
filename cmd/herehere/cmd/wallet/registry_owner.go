package wallet

import (
	"github.com/spf13/cobra"

	"boscoin.io/herehere/lib/transaction/operation"
)

var (
	WithdrawFeeCmd *cobra.Command
	UpdateCostCmd  *cobra.Command
)

func init() {
	WithdrawFeeCmd = &cobra.Command{
		Use:   "withdraw-fee",
		Short: "Drain the custody of the registry into the owner",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			s := newSender(c)
			r := s.registry(c, flagRegistry)

			s.submit(c, operation.NewWithdrawFee(r.Address))
		},
	}

	UpdateCostCmd = &cobra.Command{
		Use:   "update-cost <price>",
		Short: "Set the creation price of the registry",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			price := parseAmount(c, "<price>", args[0], "")

			s := newSender(c)
			r := s.registry(c, flagRegistry)

			s.submit(c, operation.NewUpdateCost(r.Address, price))
		},
	}

	for _, c := range []*cobra.Command{WithdrawFeeCmd, UpdateCostCmd} {
		addCommonFlags(c)
		c.Flags().StringVar(&flagRegistry, "registry", flagRegistry, "registry address; the registry of the node by default")
	}
}
