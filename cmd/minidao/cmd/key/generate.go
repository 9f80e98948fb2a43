package key

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/common/keypair"
)

var (
	GenerateCmd *cobra.Command

	flagParse  bool
	flagFormat string
)

type keyPair struct {
	Seed    string `json:"seed"`
	Address string `json:"address"`
}

func defaultEncode(v interface{}, w io.Writer) error {
	t := template.Must(template.New("").Parse(`   Secret Seed: {{ .Seed }}
Public Address: {{ .Address }}
`))
	return t.Execute(w, v)
}

func onelineEncode(v interface{}, w io.Writer) error {
	kp := v.(keyPair)
	_, err := fmt.Fprintf(w, "%s %s\n", kp.Seed, kp.Address)
	return err
}

func init() {
	GenerateCmd = &cobra.Command{
		Use:   "generate [<secret seed>]",
		Short: "Generate keypair",
		Run: func(c *cobra.Command, args []string) {
			input := strings.TrimSpace(strings.Join(args, " "))
			if flagParse && len(input) == 0 {
				common.PrintFlagsError(c, "--parse", errors.New("--parse needs <secret seed>"))
			}

			kp, err := GenerateKP(input)
			if err != nil {
				common.PrintFlagsError(c, "<secret seed>", fmt.Errorf("failed to parse secret seed: %v", err))
			}

			encoders := map[string]common.Encode{
				"json":       common.DefaultEncodes["json"],
				"prettyjson": common.DefaultEncodes["prettyjson"],
				"yaml":       common.DefaultEncodes["yaml"],
				"default":    defaultEncode,
				"oneline":    onelineEncode,
			}

			encode, ok := encoders[flagFormat]
			if !ok {
				common.PrintFlagsError(c, "--format", fmt.Errorf(`"%s" not recognized`, flagFormat))
			}

			if err := encode(keyPair{Seed: kp.Seed(), Address: kp.Address()}, os.Stdout); err != nil {
				common.PrintError(c, err)
			}
		},
	}

	GenerateCmd.Flags().BoolVar(&flagParse, "parse", false, "parse secret seed")
	GenerateCmd.Flags().StringVar(&flagFormat, "format", "default", "format={default, json, oneline, prettyjson, yaml}")
}

// GenerateKP makes the new random keypair, or parses the secret seed.
func GenerateKP(seed string) (full *keypair.Full, err error) {
	if len(seed) == 0 {
		return keypair.RandomCanFail()
	}

	var kp keypair.KP
	if kp, err = keypair.Parse(seed); err != nil {
		return
	}

	var ok bool
	if full, ok = kp.(*keypair.Full); !ok {
		err = errors.New("not a secret seed")
	}

	return
}
