package wallet

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/transaction/operation"
)

var (
	VoteCmd *cobra.Command
)

func parseChoice(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "y", "true":
		return true, nil
	case "no", "n", "false":
		return false, nil
	default:
		return false, errors.Errorf("choice must be yes or no: %q", s)
	}
}

func init() {
	VoteCmd = &cobra.Command{
		Use:   "vote <secret seed> <proposal id> <yes|no>",
		Short: "Vote on the proposal",
		Args:  cobra.ExactArgs(3),
		Run: func(c *cobra.Command, args []string) {
			kp := parseSecretSeed(c, args[0])
			id := parseProposalID(c, args[1])

			choice, err := parseChoice(args[2])
			if err != nil {
				cmdcommon.PrintFlagsError(c, "<yes|no>", err)
			}

			send(c, kp, operation.NewVote(id, choice))
		},
	}

	addFlags(VoteCmd)
}
