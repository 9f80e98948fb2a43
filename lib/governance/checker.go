package governance

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

// LedgerChecker carries the arguments of one ledger operation through its
// precondition chain. `CheckProposalExists` loads `Proposal` for the
// checkers after it.
type LedgerChecker struct {
	common.DefaultChecker

	st      *storage.LevelDBBackend
	Context ChainContext

	Title       string
	Description string

	ProposalID uint64
	Proposal   Proposal
}

var CreateProposalCheckerFuncs = []common.CheckerFunc{
	CheckProposalTitle,
	CheckProposalDescription,
}

var VoteCheckerFuncs = []common.CheckerFunc{
	CheckProposalExists,
	CheckVoterEligible,
	CheckNotVoted,
	CheckNotFinalized,
}

var FinalizeProposalCheckerFuncs = []common.CheckerFunc{
	CheckProposalExists,
	CheckVotingPeriodEnded,
	CheckNotFinalized,
}

func CheckProposalTitle(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)
	if len(checker.Title) < 1 {
		return errors.ProposalEmptyTitle
	}

	return nil
}

func CheckProposalDescription(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)
	if len(checker.Description) < 1 {
		return errors.ProposalEmptyDescription
	}

	return nil
}

func CheckProposalExists(c common.Checker, args ...interface{}) (err error) {
	checker := c.(*LedgerChecker)
	checker.Proposal, err = getProposal(checker.st, checker.ProposalID)

	return
}

func CheckVoterEligible(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)

	caller := checker.Context.Caller()
	balance, err := checker.Context.BalanceOf(caller)
	if err != nil {
		return err
	}
	if balance < MinimumBalance {
		return errors.VoterIneligible.Clone().SetData("balance", balance.CoinString())
	}

	return nil
}

func CheckNotVoted(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)

	record, err := getVoteRecord(checker.st, checker.ProposalID, checker.Context.Caller())
	if err != nil {
		return err
	}
	if record.HasVoted {
		return errors.AlreadyVoted
	}

	return nil
}

func CheckVotingPeriodEnded(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)

	height := checker.Context.CurrentHeight()
	if end := checker.Proposal.EndHeight(); height < end {
		return errors.VotingPeriodNotEnded.Clone().SetData("remaining_blocks", end-height)
	}

	return nil
}

func CheckNotFinalized(c common.Checker, args ...interface{}) error {
	checker := c.(*LedgerChecker)
	if checker.Proposal.Finalized {
		return errors.ProposalAlreadyFinalized
	}

	return nil
}
