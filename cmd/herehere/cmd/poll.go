package cmd

import (
	"context"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/client"
	"boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/storage"
)

var (
	flagPollEndpoint string = common.GetENVValue("HEREHERE_ENDPOINT", "http://127.0.0.1:12345")
	flagPollFormat   string = "yaml"
	flagPollWatch    bool
	flagPollLimit    uint64 = storage.DefaultMaxLimitListOptions
)

func init() {
	pollCmd := &cobra.Command{
		Use:   "poll",
		Short: "Look into polls",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	showCmd := &cobra.Command{
		Use:   "show <poll address>",
		Short: "Print the tally of the poll",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode := pollEncoder(c)
			cl := client.NewClient(flagPollEndpoint)

			if !flagPollWatch {
				p, err := cl.LoadPoll(args[0])
				if err != nil {
					cmdcommon.PrintError(c, err)
				}
				encode(p, os.Stdout)
				return
			}

			ctx, cancel := context.WithCancel(context.Background())
			go func() {
				cmdcommon.Interrupt(nil)
				cancel()
			}()

			err := cl.StreamPoll(ctx, args[0], func(p client.Poll) {
				encode(p, os.Stdout)
			})
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}
	showCmd.Flags().BoolVar(&flagPollWatch, "watch", flagPollWatch, "keep printing the poll whenever a vote is cast")

	ballotsCmd := &cobra.Command{
		Use:   "ballots <poll address>",
		Short: "Print the ballots of the poll in casting order",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			encode := pollEncoder(c)
			cl := client.NewClient(flagPollEndpoint)

			page, err := cl.LoadPollBallots(args[0], client.Q{Key: client.QueryLimit, Value: strconv.FormatUint(flagPollLimit, 10)})
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
			encode(page.Embedded.Records, os.Stdout)
		},
	}
	ballotsCmd.Flags().Uint64Var(&flagPollLimit, "limit", flagPollLimit, "maximum number of ballots")

	for _, sub := range []*cobra.Command{showCmd, ballotsCmd} {
		sub.Flags().StringVar(&flagPollEndpoint, "endpoint", flagPollEndpoint, "endpoint of the node")
		sub.Flags().StringVar(&flagPollFormat, "format", flagPollFormat, "format={json, prettyjson, yaml}")
		pollCmd.AddCommand(sub)
	}

	rootCmd.AddCommand(pollCmd)
}

func pollEncoder(c *cobra.Command) cmdcommon.Encode {
	encode, ok := cmdcommon.DefaultEncodes[flagPollFormat]
	if !ok {
		cmdcommon.PrintFlagsError(c, "--format", cmdcommon.ErrUnknownFormat(flagPollFormat))
	}
	return encode
}
