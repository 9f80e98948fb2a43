package cmd

import (
	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/cmd/wallet"
)

var (
	walletCmd *cobra.Command
)

func init() {
	walletCmd = &cobra.Command{
		Use:   "wallet",
		Short: "Send the governance operations",
		Run: func(c *cobra.Command, args []string) {
			if len(args) < 1 {
				c.Usage()
			}
		},
	}

	rootCmd.AddCommand(walletCmd)
	walletCmd.AddCommand(wallet.ProposeCmd)
	walletCmd.AddCommand(wallet.VoteCmd)
	walletCmd.AddCommand(wallet.FinalizeCmd)
}
