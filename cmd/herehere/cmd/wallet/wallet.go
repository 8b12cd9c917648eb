package wallet

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/client"
	libcommon "boscoin.io/herehere/lib/common"
	"boscoin.io/herehere/lib/common/keypair"
	"boscoin.io/herehere/lib/transaction"
	"boscoin.io/herehere/lib/transaction/operation"
)

var (
	flagEndpoint   string = libcommon.GetENVValue("HEREHERE_ENDPOINT", "http://127.0.0.1:12345")
	flagNetworkID  string = libcommon.GetENVValue("HEREHERE_NETWORK_ID", "")
	flagSecretSeed string = libcommon.GetENVValue("HEREHERE_SECRET_SEED", "")
	flagNonce      string
	flagFormat     string = "yaml"
)

func addCommonFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node")
	c.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	c.Flags().StringVar(&flagSecretSeed, "secret-seed", flagSecretSeed, "secret seed of the source account")
	c.Flags().StringVar(&flagNonce, "nonce", flagNonce, "nonce of the transaction; the current unix nano time by default")
	c.Flags().StringVar(&flagFormat, "format", flagFormat, "format={json, prettyjson, yaml}")
}

type sender struct {
	kp     *keypair.Full
	client *client.Client
	nonce  uint64
	encode common.Encode
}

// newSender checks the common flags.
func newSender(c *cobra.Command) *sender {
	var ok bool
	var err error

	s := &sender{}

	if s.encode, ok = common.DefaultEncodes[flagFormat]; !ok {
		common.PrintFlagsError(c, "--format", common.ErrUnknownFormat(flagFormat))
	}
	if len(flagNetworkID) < 1 {
		common.PrintFlagsError(c, "--network-id", fmt.Errorf("--network-id must be given"))
	}
	if s.kp, err = common.ParseSecretSeed(flagSecretSeed); err != nil {
		common.PrintFlagsError(c, "--secret-seed", err)
	}

	if len(flagNonce) < 1 {
		s.nonce = uint64(time.Now().UnixNano())
	} else if s.nonce, err = strconv.ParseUint(flagNonce, 10, 64); err != nil {
		common.PrintFlagsError(c, "--nonce", err)
	}

	s.client = client.NewClient(flagEndpoint)

	return s
}

// registry is the given one or the registry of the node.
func (s *sender) registry(c *cobra.Command, address string) client.Registry {
	if len(address) < 1 {
		nodeInfo, err := s.client.LoadNodeInfo()
		if err != nil {
			common.PrintError(c, err)
		}
		address = nodeInfo.Ledger.Registry
	}

	r, err := s.client.LoadRegistry(address)
	if err != nil {
		common.PrintError(c, err)
	}
	return r
}

func (s *sender) submit(c *cobra.Command, bodies ...operation.Body) {
	var ops []operation.Operation
	for _, body := range bodies {
		op, err := operation.NewOperation(body)
		if err != nil {
			common.PrintError(c, err)
		}
		ops = append(ops, op)
	}

	tx, err := transaction.NewTransaction(s.kp.Address(), s.nonce, ops...)
	if err != nil {
		common.PrintError(c, err)
	}
	tx.Sign(s.kp, []byte(flagNetworkID))

	record, err := s.client.SubmitTransaction(tx)
	if err != nil {
		common.PrintError(c, err)
	}

	if err = s.encode(record, os.Stdout); err != nil {
		common.PrintError(c, err)
	}
}

func parseAmount(c *cobra.Command, name, s string, defaultAmount string) libcommon.Amount {
	if len(s) < 1 {
		s = defaultAmount
	}

	amount, err := common.ParseAmountFromString(s)
	if err != nil {
		common.PrintFlagsError(c, name, err)
	}
	return amount
}
