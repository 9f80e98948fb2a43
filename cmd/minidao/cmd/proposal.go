package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/cmd/proposal"
)

func init() {
	proposalCmd := &cobra.Command{
		Use:   "proposal",
		Short: "Query the proposals",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	proposalCmd.AddCommand(proposal.GetCmd)
	proposalCmd.AddCommand(proposal.ListCmd)
	rootCmd.AddCommand(proposalCmd)
}
