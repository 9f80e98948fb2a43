package wallet

import (
	"fmt"
	"os"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	cmdcommon "boscoin.io/minidao/cmd/minidao/common"
	"boscoin.io/minidao/lib/client"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	liberrors "boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

var (
	flagNetworkID string = common.GetENVValue("MINIDAO_NETWORK_ID", "")
	flagEndpoint  string = common.GetENVValue("MINIDAO_API_ENDPOINT", "https://127.0.0.1:12345")
	flagFormat    string = "default"
)

func addFlags(c *cobra.Command) {
	c.Flags().StringVar(&flagEndpoint, "endpoint", flagEndpoint, "endpoint of the node api")
	c.Flags().StringVar(&flagNetworkID, "network-id", flagNetworkID, "network id")
	c.Flags().StringVar(&flagFormat, "format", flagFormat, "format={default, json, prettyjson, yaml}")
}

func parseSecretSeed(c *cobra.Command, seed string) *keypair.Full {
	kp, err := keypair.Parse(seed)
	if err != nil {
		cmdcommon.PrintFlagsError(c, "<secret seed>", err)
	}

	full, ok := kp.(*keypair.Full)
	if !ok {
		cmdcommon.PrintFlagsError(c, "<secret seed>", errors.New("provided key is an address, not a secret seed"))
	}

	return full
}

func parseProposalID(c *cobra.Command, s string) uint64 {
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id < 1 {
		cmdcommon.PrintFlagsError(c, "<proposal id>", errors.Errorf("invalid proposal id: %q", s))
	}

	return id
}

// loadSequenceID returns 0 for the account which is not yet created.
func loadSequenceID(cl *client.Client, address string) (uint64, error) {
	account, err := cl.LoadAccount(address)
	if err == nil {
		return account.SequenceID, nil
	}

	if cerr, ok := err.(client.Error); ok && cerr.Problem.Code == liberrors.BlockAccountDoesNotExists.Code {
		return 0, nil
	}

	return 0, err
}

// MakeTransaction makes the transaction of the operation body signed by kp.
func MakeTransaction(kp *keypair.Full, networkID []byte, sequenceID uint64, body operation.Body) (tx transaction.Transaction, err error) {
	var op operation.Operation
	if op, err = operation.NewOperation(body); err != nil {
		return
	}

	if tx, err = transaction.NewTransaction(kp.Address(), sequenceID, op); err != nil {
		return
	}
	tx.Sign(kp, networkID)

	return
}

// send submits the operation and prints the receipt.
func send(c *cobra.Command, kp *keypair.Full, body operation.Body) {
	if len(flagNetworkID) < 1 {
		cmdcommon.PrintFlagsError(c, "--network-id", errors.New("--network-id must be given"))
	}

	encode, found := cmdcommon.DefaultEncodes[flagFormat]
	if !found && flagFormat != "default" {
		cmdcommon.PrintFlagsError(c, "--format", errors.Errorf(`"%s" not recognized`, flagFormat))
	}

	cl := client.NewClient(flagEndpoint)
	defer cl.HTTP.Close()

	sequenceID, err := loadSequenceID(cl, kp.Address())
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	tx, err := MakeTransaction(kp, []byte(flagNetworkID), sequenceID, body)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	receipt, err := cl.SubmitTransaction(tx)
	if err != nil {
		cmdcommon.PrintError(c, err)
	}

	if found {
		if err := encode(receipt, os.Stdout); err != nil {
			cmdcommon.PrintError(c, err)
		}
		return
	}

	fmt.Printf("transaction %s is applied at block %d\n", receipt.Hash, receipt.BlockHeight)
	for _, raw := range receipt.Events {
		e, err := governance.UnmarshalEventJSON(raw)
		if err != nil {
			cmdcommon.PrintError(c, err)
		}
		fmt.Println(DescribeEvent(e))
	}
}

func DescribeEvent(e governance.Event) string {
	switch ev := e.(type) {
	case governance.ProposalCreated:
		return fmt.Sprintf(
			"proposal #%d %q is created; voting ends after %d blocks",
			ev.ID, ev.Title, governance.VotingPeriod,
		)
	case governance.VoteSubmitted:
		choice := "no"
		if ev.Choice {
			choice = "yes"
		}
		return fmt.Sprintf("voted %s on proposal #%d; yes=%d no=%d", choice, ev.ID, ev.YesVotes, ev.NoVotes)
	case governance.ProposalFinalized:
		result := "failed"
		if ev.Passed {
			result = "passed"
		}
		return fmt.Sprintf("proposal #%d is finalized and %s; yes=%d no=%d", ev.ID, result, ev.YesVotes, ev.NoVotes)
	default:
		return string(e.Type())
	}
}
