package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/errors"
)

// PrintFlagsError issues a message on stderr, shows the usage and exits.
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, errorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n\n", errorString(err))
	}

	os.Exit(1)
}

func errorString(err error) string {
	if e, ok := err.(*errors.Error); ok {
		if len(e.Data) > 0 {
			return fmt.Sprintf("%s; %v", e.Message, e.Data)
		}
		return e.Message
	}
	return err.Error()
}

// ParseAmountFromString parses a decimal amount of coins; commas and
// underscores are digit separators, the dot is the decimal separator.
func ParseAmountFromString(input string) (common.Amount, error) {
	amountStr := strings.Replace(input, ",", "", -1)
	amountStr = strings.Replace(amountStr, "_", "", -1)
	return common.AmountFromDecimalString(amountStr)
}

// ParseSecretSeed refuses public addresses.
func ParseSecretSeed(seed string) (*keypair.Full, error) {
	kp, err := keypair.Parse(seed)
	if err != nil {
		return nil, err
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		return nil, fmt.Errorf("provided key is an address, not a secret seed")
	}
	return full, nil
}

// GetDefaultStoragePath is the `db` directory under the current one.
func GetDefaultStoragePath(c *cobra.Command) string {
	currentDirectory, err := os.Getwd()
	if err == nil {
		currentDirectory, err = filepath.Abs(currentDirectory)
	}
	if err != nil {
		PrintFlagsError(c, "--storage", err)
	}

	return fmt.Sprintf("file://%s/db", currentDirectory)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
