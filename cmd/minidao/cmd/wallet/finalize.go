package wallet

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/lib/transaction/operation"
)

var (
	FinalizeCmd *cobra.Command
)

func init() {
	FinalizeCmd = &cobra.Command{
		Use:   "finalize <secret seed> <proposal id>",
		Short: "Finalize the proposal after the voting period",
		Args:  cobra.ExactArgs(2),
		Run: func(c *cobra.Command, args []string) {
			kp := parseSecretSeed(c, args[0])
			send(c, kp, operation.NewFinalizeProposal(parseProposalID(c, args[1])))
		},
	}

	addFlags(FinalizeCmd)
}
