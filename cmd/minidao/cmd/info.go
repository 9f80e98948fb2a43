package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
	"boscoin.io/minidao/lib/common"
)

var (
	flagInfoEndpoint string = common.GetENVValue("MINIDAO_API_ENDPOINT", "https://127.0.0.1:12345")
	flagInfoFormat   string = "default"
)

func init() {
	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Print the node and the governance constants",
		Run: func(c *cobra.Command, args []string) {
			cl := client.NewClient(flagInfoEndpoint)
			defer cl.HTTP.Close()

			info, err := cl.LoadNodeInfo()
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if flagInfoFormat != "default" {
				encode, found := cmdcommon.DefaultEncodes[flagInfoFormat]
				if !found {
					cmdcommon.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagInfoFormat))
				}
				if err := encode(info, os.Stdout); err != nil {
					cmdcommon.PrintError(c, err)
				}
				return
			}

			fmt.Printf("        network: %s\n", info.Policy.NetworkID)
			fmt.Printf("        version: %s\n", info.Node.Version.Version)
			fmt.Printf("         height: %d\n", info.Block.Height)
			fmt.Printf("     block time: %s\n", info.Policy.BlockTime)
			fmt.Printf("minimum balance: %s coin\n", info.Governance.MinimumBalance.CoinString())
			fmt.Printf("  voting period: %d blocks\n", info.Governance.VotingPeriod)
			fmt.Printf("      proposals: %d\n", info.Governance.ProposalCount)
		},
	}

	infoCmd.Flags().StringVar(&flagInfoEndpoint, "endpoint", flagInfoEndpoint, "endpoint of the node api")
	infoCmd.Flags().StringVar(&flagInfoFormat, "format", flagInfoFormat, "format={default, json, prettyjson, yaml}")

	rootCmd.AddCommand(infoCmd)
}
