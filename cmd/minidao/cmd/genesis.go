package cmd

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/storage"
)

const (
	initialBalance = "1.0000000"
)

func init() {
	genesisCmd := &cobra.Command{
		Use:   "genesis <address>[,balance] ...",
		Short: "initialize new ledger with the funded accounts",
		Args:  cobra.MinimumNArgs(1),
		Run: func(c *cobra.Command, args []string) {
			flagName, err := MakeGenesisBlock(args, flagStorageConfigString)
			if len(flagName) != 0 || err != nil {
				common.PrintFlagsError(c, flagName, err)
			}

			fmt.Println("successfully created genesis block")
		},
	}

	genesisCmd.Flags().StringVar(&flagStorageConfigString, "storage", flagStorageConfigString, "storage uri")

	rootCmd.AddCommand(genesisCmd)
}

// ParseGenesisAccount parses "<address>[,balance]"; the balance is in
// coins, ie. "0.1".
func ParseGenesisAccount(s string) (*block.BlockAccount, error) {
	csv := strings.Split(s, ",")
	if len(csv) > 2 {
		return nil, errors.Errorf("expects address[,balance], but more than 2 commas detected: %q", s)
	}

	if !keypair.IsAddress(csv[0]) {
		return nil, errors.Errorf("invalid public address: %q", csv[0])
	}

	balanceStr := initialBalance
	if len(csv) == 2 {
		balanceStr = csv[1]
	}

	balance, err := common.ParseAmountFromString(balanceStr)
	if err != nil {
		return nil, err
	}

	return block.NewBlockAccount(csv[0], balance), nil
}

//
// MakeGenesisBlock creates the genesis block and the funded accounts in
// the storage.
//
// Returns:
//   If an error happened, returns a tuple of (string, error).
//   The string argument represent the name of the flag which errored,
//   and error is the more detailed error.
//
func MakeGenesisBlock(accounts []string, storageURI string) (string, error) {
	var genesisAccounts []block.BlockAccount
	for _, a := range accounts {
		ba, err := ParseGenesisAccount(a)
		if err != nil {
			return "<address>[,balance]", err
		}
		genesisAccounts = append(genesisAccounts, *ba)
	}

	storageConfig, err := storage.NewConfigFromString(storageURI)
	if err != nil {
		return "--storage", err
	}

	st, err := storage.NewStorage(storageConfig)
	if err != nil {
		return "--storage", errors.Wrap(err, "failed to initialize storage")
	}
	defer st.Close()

	if _, err = block.MakeGenesisBlock(st, genesisAccounts...); err != nil {
		return "--storage", err
	}

	return "", nil
}
