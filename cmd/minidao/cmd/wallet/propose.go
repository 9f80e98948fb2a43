package wallet

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/lib/transaction/operation"
)

var (
	ProposeCmd *cobra.Command
)

func init() {
	ProposeCmd = &cobra.Command{
		Use:   "propose <secret seed> <title> <description>",
		Short: "Create new proposal",
		Args:  cobra.ExactArgs(3),
		Run: func(c *cobra.Command, args []string) {
			kp := parseSecretSeed(c, args[0])
			send(c, kp, operation.NewCreateProposal(args[1], args[2]))
		},
	}

	addFlags(ProposeCmd)
}
