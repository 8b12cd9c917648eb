package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/version"
)

var flagVersionFormat string = "yaml"

func init() {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Run: func(c *cobra.Command, args []string) {
			encode, ok := common.DefaultEncodes[flagVersionFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", common.ErrUnknownFormat(flagVersionFormat))
			}
			encode(version.Info(), os.Stdout)
		},
	}
	versionCmd.Flags().StringVar(&flagVersionFormat, "format", flagVersionFormat, "format={json, prettyjson, yaml}")

	rootCmd.AddCommand(versionCmd)
}
