package proposal

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
)

var (
	ListCmd *cobra.Command

	flagLimit  uint64 = 10
	flagCursor string
	flagOldest bool
)

func init() {
	ListCmd = &cobra.Command{
		Use:   "list",
		Short: "Print the proposals, the newest first",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, args []string) {
			queries := []client.Q{
				{Key: client.QueryLimit, Value: strconv.FormatUint(flagLimit, 10)},
				{Key: client.QueryReverse, Value: strconv.FormatBool(!flagOldest)},
			}
			if len(flagCursor) > 0 {
				queries = append(queries, client.Q{Key: client.QueryCursor, Value: flagCursor})
			}

			cl := client.NewClient(flagEndpoint)
			defer cl.HTTP.Close()

			page, err := cl.LoadProposals(queries...)
			if err != nil {
				cmdcommon.PrintError(c, err)
			}

			if flagFormat != "default" {
				encode, found := cmdcommon.DefaultEncodes[flagFormat]
				if !found {
					cmdcommon.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagFormat))
				}
				if err := encode(page.Embedded.Records, os.Stdout); err != nil {
					cmdcommon.PrintError(c, err)
				}
				return
			}

			if len(page.Embedded.Records) < 1 {
				fmt.Println("no proposals")
				return
			}

			for _, p := range page.Embedded.Records {
				if err := defaultEncode(p, os.Stdout); err != nil {
					cmdcommon.PrintError(c, err)
				}
			}
			if uint64(len(page.Embedded.Records)) == flagLimit && len(page.Links.Next.Href) > 0 {
				fmt.Printf("\nmore: %s\n", page.Links.Next.Href)
			}
		},
	}

	addFlags(ListCmd)
	ListCmd.Flags().Uint64Var(&flagLimit, "limit", flagLimit, "number of proposals")
	ListCmd.Flags().StringVar(&flagCursor, "cursor", flagCursor, "cursor of the next page")
	ListCmd.Flags().BoolVar(&flagOldest, "oldest", flagOldest, "the oldest first")
}
