package common

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"boscoin.io/minidao/lib/client"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
)

/**
 * Issue a message on Stderr then exit with an error code
 */
func PrintFlagsError(cmd *cobra.Command, flagName string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: invalid '%s'; %s\n\n", flagName, ErrorString(err))
	}

	cmd.Help()

	os.Exit(1)
}

// PrintError prints the error with the guidance of the known error codes.
func PrintError(cmd *cobra.Command, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", ErrorString(err))
		if guidance := Guidance(err); len(guidance) > 0 {
			fmt.Fprintf(os.Stderr, "  %s\n", guidance)
		}
	}

	os.Exit(1)
}

func ErrorString(err error) string {
	switch e := err.(type) {
	case *errors.Error:
		return e.Message
	case client.Error:
		return e.Problem.Title
	default:
		return err.Error()
	}
}

func errorCode(err error) uint {
	if e, ok := err.(client.Error); ok {
		return e.Problem.Code
	}

	return errors.Code(err)
}

// Guidance tells what to do next for the rejected governance operation.
func Guidance(err error) string {
	switch errorCode(err) {
	case errors.VoterIneligible.Code:
		return fmt.Sprintf(
			"fund the wallet with at least %s coin to vote",
			governance.MinimumBalance.CoinString(),
		)
	case errors.AlreadyVoted.Code:
		return "each address votes once per proposal"
	case errors.VotingPeriodNotEnded.Code:
		if e, ok := err.(client.Error); ok {
			if remaining, found := e.Problem.Data["remaining_blocks"]; found {
				return fmt.Sprintf("wait %v more blocks before finalizing", remaining)
			}
		}
		return fmt.Sprintf("wait until %d blocks pass after the proposal is created", governance.VotingPeriod)
	case errors.ProposalAlreadyFinalized.Code:
		return "the proposal is already finalized"
	case errors.ProposalNotFound.Code:
		return "check the proposal id with `minidao proposal list`"
	case errors.ProposalEmptyTitle.Code, errors.ProposalEmptyDescription.Code:
		return "title and description must not be empty"
	case errors.TransactionInvalidSequenceID.Code:
		return "another transaction of this wallet was applied; try again"
	}

	return ""
}

// ParseAmountFromString parses an amount in coins, ie. "0.1" or "1,000.5".
//
// The dot ('.') is the decimal separator; commas (',') and underscores
// ('_') are treated as digit separators and skipped.
func ParseAmountFromString(input string) (common.Amount, error) {
	amountStr := strings.Replace(input, ",", "", -1)
	amountStr = strings.Replace(amountStr, "_", "", -1)
	return common.AmountFromCoinString(amountStr)
}

type ListFlags []string

func (i *ListFlags) Type() string {
	return "list"
}

func (i *ListFlags) String() string {
	return strings.Join([]string(*i), " ")
}

func (i *ListFlags) Set(value string) error {
	*i = append(*i, value)
	return nil
}
