package proposal

import (
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
)

var (
	GetCmd *cobra.Command
)

func init() {
	GetCmd = &cobra.Command{
		Use:   "get <proposal id>",
		Short: "Print the proposal",
		Args:  cobra.ExactArgs(1),
		Run: func(c *cobra.Command, args []string) {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id < 1 {
				cmdcommon.PrintFlagsError(c, "<proposal id>", errors.Errorf("invalid proposal id: %q", args[0]))
			}

			cl := client.NewClient(flagEndpoint)
			defer cl.HTTP.Close()

			p, err := cl.LoadProposal(id)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if flagFormat == "default" {
				err = defaultEncode(p, os.Stdout)
			} else if encode, found := cmdcommon.DefaultEncodes[flagFormat]; found {
				err = encode(p, os.Stdout)
			} else {
				cmdcommon.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagFormat))
			}
			if err != nil {
				cmdcommon.PrintError(c, err)
			}
		},
	}

	addFlags(GetCmd)
}
