package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/herehere/cmd/herehere/common"
	"boscoin.io/herehere/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string = "default"
)

type keyPair struct {
	Seed       string  `json:"seed"`
	Address    string  `json:"address"`
	Passphrase *string `json:"passphrase,omitempty"`
}

var defaultTemplate = template.Must(template.New("").Parse(`Secret Seed: {{ .Seed }}
    Address: {{ .Address }}{{ if .Passphrase }}
 Passphrase: "{{ .Passphrase }}"{{ end }}
`))

func defaultEncode(v interface{}, w io.Writer) error {
	return defaultTemplate.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

var encoders = map[string]common.Encode{
	"json":       common.DefaultEncodes["json"],
	"prettyjson": common.DefaultEncodes["prettyjson"],
	"default":    defaultEncode,
	"oneline":    onelineEncode,
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<passphrase> | <secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", common.ErrUnknownFormat(flagFormat))
			}

			input := strings.TrimSpace(strings.Join(args, " "))
			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := generateKP(input, flagParse)
			if err != nil {
				common.PrintFlagsError(c, "<input>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			var passphrase *string
			if !flagParse && len(input) > 0 {
				passphrase = &input
			}

			if err = encode(keyPair{Seed: kp.Seed(), Address: kp.Address(), Passphrase: passphrase}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", flagParse, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", flagFormat, "format={default, json, oneline, prettyjson}")
}

// generateKP makes a random keypair without input. The input is either a
// passphrase for the deterministic keypair or, with `fromSeed`, a secret
// seed.
func generateKP(input string, fromSeed bool) (full *keypair.Full, err error) {
	if len(input) == 0 {
		return keypair.RandomCanFail()
	} else if fromSeed {
		return common.ParseSecretSeed(input)
	}

	return keypair.Master(input).(*keypair.Full), nil
}
