package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/cmd/wallet"
)

func init() {
	walletCmd := &cobra.Command{
		Use:   "wallet",
		Short: "Send transactions to a node",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	walletCmd.AddCommand(
		wallet.CreatePollCmd,
		wallet.VoteCmd,
		wallet.WithdrawFeeCmd,
		wallet.UpdateCostCmd,
		wallet.TransferCmd,
	)
	rootCmd.AddCommand(walletCmd)
}
