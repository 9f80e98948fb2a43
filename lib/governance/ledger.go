package governance

import (
	"encoding/json"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

// Ledger keeps the proposals and the vote records in the storage. Every
// mutating call is applied in one storage transaction; when the storage
// is already a transaction, the call joins it and the owner of the
// transaction commits.
type Ledger struct {
	st *storage.LevelDBBackend
}

func NewLedger(st *storage.LevelDBBackend) *Ledger {
	return &Ledger{st: st}
}

func (l *Ledger) withTransaction(f func(*storage.LevelDBBackend) error) (err error) {
	if l.st.IsTransaction() {
		return f(l.st)
	}

	var ts *storage.LevelDBBackend
	if ts, err = l.st.OpenTransaction(); err != nil {
		return
	}

	if err = f(ts); err != nil {
		ts.Discard()
		return
	}

	return ts.Commit()
}

// CreateProposal stores a new proposal made by the caller at the current
// height and returns its id.
func (l *Ledger) CreateProposal(ctx ChainContext, title, description string) (id uint64, events []Event, err error) {
	err = l.withTransaction(func(ts *storage.LevelDBBackend) (err error) {
		checker := &LedgerChecker{
			DefaultChecker: common.DefaultChecker{Funcs: CreateProposalCheckerFuncs},
			st:             ts,
			Context:        ctx,
			Title:          title,
			Description:    description,
		}
		if err = common.RunChecker(checker, checkerDeferFunc); err != nil {
			return
		}

		var count uint64
		if count, err = getProposalCount(ts); err != nil {
			return
		}

		p := Proposal{
			ID:              count + 1,
			Title:           title,
			Description:     description,
			CreatedAtHeight: ctx.CurrentHeight(),
			Proposer:        ctx.Caller(),
		}
		if err = ts.New(GetProposalKey(p.ID), p); err != nil {
			return
		}
		if count == 0 {
			err = ts.New(proposalCountKey, p.ID)
		} else {
			err = ts.Set(proposalCountKey, p.ID)
		}
		if err != nil {
			return
		}

		id = p.ID
		events = []Event{
			ProposalCreated{
				ID:              p.ID,
				Proposer:        p.Proposer,
				Title:           p.Title,
				Description:     p.Description,
				CreatedAtHeight: p.CreatedAtHeight,
			},
		}

		return
	})
	if err != nil {
		return 0, nil, err
	}

	log.Debug("proposal created", "id", id, "proposer", ctx.Caller(), "height", ctx.CurrentHeight())

	return
}

// Vote records the choice of the caller. The vote is accepted until the
// proposal is finalized, even after the voting period; the tallies of the
// finalized proposal are frozen. The finalized check runs last, after the
// existence, eligibility and already-voted checks.
func (l *Ledger) Vote(ctx ChainContext, id uint64, choice bool) (events []Event, err error) {
	err = l.withTransaction(func(ts *storage.LevelDBBackend) (err error) {
		checker := &LedgerChecker{
			DefaultChecker: common.DefaultChecker{Funcs: VoteCheckerFuncs},
			st:             ts,
			Context:        ctx,
			ProposalID:     id,
		}
		if err = common.RunChecker(checker, checkerDeferFunc); err != nil {
			return
		}

		voter := ctx.Caller()
		p := checker.Proposal
		if choice {
			p.YesVotes++
		} else {
			p.NoVotes++
		}

		if err = ts.New(GetVoteRecordKey(id, voter), VoteRecord{HasVoted: true, Choice: choice}); err != nil {
			return
		}
		if err = ts.Set(GetProposalKey(id), p); err != nil {
			return
		}

		events = []Event{
			VoteSubmitted{
				ID:       id,
				Voter:    voter,
				Choice:   choice,
				YesVotes: p.YesVotes,
				NoVotes:  p.NoVotes,
			},
		}

		return
	})
	if err != nil {
		return nil, err
	}

	log.Debug("vote submitted", "id", id, "voter", ctx.Caller(), "choice", choice)

	return
}

// FinalizeProposal closes the proposal once the voting period is over. The
// proposal passes when it has more yes votes than no votes.
func (l *Ledger) FinalizeProposal(ctx ChainContext, id uint64) (events []Event, err error) {
	err = l.withTransaction(func(ts *storage.LevelDBBackend) (err error) {
		checker := &LedgerChecker{
			DefaultChecker: common.DefaultChecker{Funcs: FinalizeProposalCheckerFuncs},
			st:             ts,
			Context:        ctx,
			ProposalID:     id,
		}
		if err = common.RunChecker(checker, checkerDeferFunc); err != nil {
			return
		}

		p := checker.Proposal
		p.Finalized = true
		p.Passed = p.YesVotes > p.NoVotes
		if err = ts.Set(GetProposalKey(id), p); err != nil {
			return
		}

		events = []Event{
			ProposalFinalized{
				ID:       id,
				Passed:   p.Passed,
				YesVotes: p.YesVotes,
				NoVotes:  p.NoVotes,
			},
		}

		return
	})
	if err != nil {
		return nil, err
	}

	log.Debug("proposal finalized", "id", id, "height", ctx.CurrentHeight())

	return
}

// CanVote is true when address holds `MinimumBalance` at least.
func (l *Ledger) CanVote(ctx ChainContext, address string) (bool, error) {
	balance, err := ctx.BalanceOf(address)
	if err != nil {
		return false, err
	}

	return balance >= MinimumBalance, nil
}

// CanFinalizeProposal is false for the unknown proposal.
func (l *Ledger) CanFinalizeProposal(ctx ChainContext, id uint64) (bool, error) {
	p, err := getProposal(l.st, id)
	if err != nil {
		if errors.Code(err) == errors.ProposalNotFound.Code {
			return false, nil
		}
		return false, err
	}

	return !p.Finalized && ctx.CurrentHeight() >= p.EndHeight(), nil
}

// GetRemainingBlocks returns 0 once the voting period is over or the
// proposal is finalized.
func (l *Ledger) GetRemainingBlocks(ctx ChainContext, id uint64) (uint64, error) {
	p, err := getProposal(l.st, id)
	if err != nil {
		return 0, err
	}

	return p.RemainingBlocks(ctx.CurrentHeight()), nil
}

func (l *Ledger) HasUserVoted(id uint64, address string) (bool, error) {
	record, err := getVoteRecord(l.st, id, address)
	if err != nil {
		return false, err
	}

	return record.HasVoted, nil
}

// GetUserVote returns the choice of address; false when it has not voted.
func (l *Ledger) GetUserVote(id uint64, address string) (bool, error) {
	record, err := getVoteRecord(l.st, id, address)
	if err != nil {
		return false, err
	}

	return record.HasVoted && record.Choice, nil
}

func (l *Ledger) GetVoteCounts(id uint64) (VoteCounts, error) {
	p, err := getProposal(l.st, id)
	if err != nil {
		return VoteCounts{}, err
	}

	return p.VoteCounts(), nil
}

func (l *Ledger) GetProposal(id uint64) (Proposal, error) {
	return getProposal(l.st, id)
}

func (l *Ledger) ProposalCount() (uint64, error) {
	return getProposalCount(l.st)
}

// GetProposals iterates the proposals in id order; the cursor of each
// proposal can be given back in options to continue. The record which can
// not be decoded is logged and skipped.
func (l *Ledger) GetProposals(options storage.ListOptions) (func() (Proposal, bool, []byte), func()) {
	iterFunc, closeFunc := l.st.GetIterator(proposalPrefixID, options)

	return (func() (Proposal, bool, []byte) {
			for {
				item, hasNext := iterFunc()
				if !hasNext {
					return Proposal{}, false, item.Key
				}

				var p Proposal
				if err := json.Unmarshal(item.Value, &p); err != nil {
					log.Error("failed to decode proposal", "key", string(item.Key), "error", err)
					continue
				}
				return p, hasNext, item.Key
			}
		}), (func() {
			closeFunc()
		})
}

func getProposalCount(st *storage.LevelDBBackend) (count uint64, err error) {
	if err = st.Get(proposalCountKey, &count); err != nil {
		if errors.Code(err) == errors.StorageRecordDoesNotExist.Code {
			return 0, nil
		}
	}

	return
}

func getProposal(st *storage.LevelDBBackend, id uint64) (p Proposal, err error) {
	if err = st.Get(GetProposalKey(id), &p); err != nil {
		if errors.Code(err) == errors.StorageRecordDoesNotExist.Code {
			err = errors.ProposalNotFound.Clone().SetData("id", id)
		}
	}

	return
}

func getVoteRecord(st *storage.LevelDBBackend, id uint64, address string) (record VoteRecord, err error) {
	if err = st.Get(GetVoteRecordKey(id, address), &record); err != nil {
		if errors.Code(err) == errors.StorageRecordDoesNotExist.Code {
			return VoteRecord{}, nil
		}
	}

	return
}
