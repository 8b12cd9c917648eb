package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/ledger"
	"boscoin.io/herehere/lib/storage"
	"boscoin.io/herehere/lib/transaction"
)

const (
	initialBalance = "1,000,000,000.0"
)

var (
	flagBalance       string = common.GetENVValue("HEREHERE_GENESIS_BALANCE", initialBalance)
	flagCreationPrice string = common.GetENVValue("HEREHERE_CREATION_PRICE", common.DefaultCreationPrice.DecimalString())
	flagVotePrice     string = common.GetENVValue("HEREHERE_VOTE_PRICE", common.DefaultVotePrice.DecimalString())
	flagGenesisFormat string = "yaml"
)

func init() {
	genesisCmd := &cobra.Command{
		Use:   "genesis <public key>",
		Short: "fund the owner and instantiate the registry",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode, ok := cmdcommon.DefaultEncodes[flagGenesisFormat]
			if !ok {
				cmdcommon.PrintFlagsError(c, "--format", cmdcommon.ErrUnknownFormat(flagGenesisFormat))
			}

			g, flagName, err := makeGenesis(args[0], flagNetworkID, flagBalance, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				cmdcommon.PrintFlagsError(c, flagName, err)
			}

			encode(g, os.Stdout)
		},
	}

	genesisCmd.Flags().StringVar(&flagBalance, "balance", flagBalance, "initial balance of the owner")
	genesisCmd.Flags().StringVar(&flagCreationPrice, "creation-price", flagCreationPrice, "initial price of a poll creation")
	genesisCmd.Flags().StringVar(&flagVotePrice, "vote-price", flagVotePrice, "initial price of a vote")
	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")
	genesisCmd.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	genesisCmd.Flags().StringVar(&flagGenesisFormat, "format", flagGenesisFormat, "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(genesisCmd)
}

// MakeGenesis funds the given address and instantiates the registry owned by
// it. It is shared with `node --genesis`.
//
// If it fails, the name of the flag which errored is returned with the
// error.
func MakeGenesis(addressStr, networkID, balanceStr, storageURI string) (string, error) {
	_, flagName, err := makeGenesis(addressStr, networkID, balanceStr, storageURI)
	return flagName, err
}

func makeGenesis(addressStr, networkID, balanceStr, storageURI string) (g transaction.Genesis, flagName string, err error) {
	var kp keypair.KP
	if kp, err = keypair.Parse(addressStr); err != nil {
		flagName = "<address>"
		return
	}

	if len(networkID) == 0 {
		flagName, err = "--network-id", errors.New("--network-id must be provided")
		return
	}

	if len(balanceStr) == 0 {
		balanceStr = initialBalance
	}

	var balance common.Amount
	if balance, err = cmdcommon.ParseAmountFromString(balanceStr); err != nil {
		flagName = "--balance"
		return
	}

	config := common.NewConfig([]byte(networkID))
	if config.CreationPrice, err = cmdcommon.ParseAmountFromString(flagCreationPrice); err != nil {
		flagName = "--creation-price"
		return
	}
	if config.VotePrice, err = cmdcommon.ParseAmountFromString(flagVotePrice); err != nil {
		flagName = "--vote-price"
		return
	}

	var storageConfig *storage.Config
	if storageConfig, err = storage.NewConfigFromString(storageURI); err != nil {
		flagName = "--storage"
		return
	}

	st, err := storage.NewLevelDBBackend(storageConfig)
	if err != nil {
		flagName, err = "--storage", fmt.Errorf("failed to initialize storage: %v", err)
		return
	}
	defer st.Close()

	g, err = transaction.MakeGenesis(ledger.New(st, nil, config), kp.Address(), balance)
	return
}
