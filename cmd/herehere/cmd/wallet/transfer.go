package wallet

import (
	"fmt"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	libcommon "boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/transaction/operation"
)

var (
	TransferCmd *cobra.Command

	flagCurrency string = libcommon.SettlementCurrency
)

func init() {
	TransferCmd = &cobra.Command{
		Use:   "transfer <target address> <amount>",
		Short: "Send coins to another account",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			if !keypair.IsValidAddress(args[0]) {
				common.PrintFlagsError(c, "<target address>", fmt.Errorf("not a public address, %q", args[0]))
			}
			amount := parseAmount(c, "<amount>", args[1], "")

			s := newSender(c)
			s.submit(c, operation.NewTransfer(args[0], flagCurrency, amount))
		},
	}

	addCommonFlags(TransferCmd)
	TransferCmd.Flags().StringVar(&flagCurrency, "currency", flagCurrency, "currency to send")
}
