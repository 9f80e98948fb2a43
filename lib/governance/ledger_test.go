package governance

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

func TestConstants(t *testing.T) {
	require.Equal(t, uint64(20), VotingPeriod)
	require.Equal(t, "0.1", MinimumBalance.CoinString())
	require.Equal(t, common.Amount(1000000), MinimumBalance)
}

func TestCreateProposal(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(100, "proposer")

	count, err := ledger.ProposalCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)

	id, events, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)
	require.Equal(t, []Event{
		ProposalCreated{ID: 1, Proposer: "proposer", Title: "T", Description: "D", CreatedAtHeight: 100},
	}, events)

	id, _, err = ledger.CreateProposal(ctx, "T2", "D2")
	require.NoError(t, err)
	require.Equal(t, uint64(2), id)

	count, err = ledger.ProposalCount()
	require.NoError(t, err)
	require.Equal(t, uint64(2), count)
}

func TestCreateProposalInvalidInput(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")

	cases := []struct {
		name        string
		title       string
		description string
		expected    *errors.Error
	}{
		{"empty title", "", "D", errors.ProposalEmptyTitle},
		{"empty description", "T", "", errors.ProposalEmptyDescription},
		{"title checked first", "", "", errors.ProposalEmptyTitle},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			id, events, err := ledger.CreateProposal(ctx, c.title, c.description)
			require.Equal(t, c.expected, err)
			require.True(t, errors.IsInvalidInput(err))
			require.Equal(t, uint64(0), id)
			require.Nil(t, events)
		})
	}

	count, err := ledger.ProposalCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)
}

func TestVote(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	yes := TestMakeVoter(ctx, common.AmountPerCoin)
	no := TestMakeVoter(ctx, MinimumBalance)

	events, err := ledger.Vote(ctx.As(yes), id, true)
	require.NoError(t, err)
	require.Equal(t, []Event{VoteSubmitted{ID: id, Voter: yes, Choice: true, YesVotes: 1, NoVotes: 0}}, events)

	events, err = ledger.Vote(ctx.As(no), id, false)
	require.NoError(t, err)
	require.Equal(t, []Event{VoteSubmitted{ID: id, Voter: no, Choice: false, YesVotes: 1, NoVotes: 1}}, events)

	counts, err := ledger.GetVoteCounts(id)
	require.NoError(t, err)
	require.Equal(t, VoteCounts{Yes: 1, No: 1, Total: 2}, counts)
	require.Equal(t, uint64(50), counts.YesPercentage())
	require.Equal(t, uint64(50), counts.NoPercentage())

	voted, err := ledger.HasUserVoted(id, yes)
	require.NoError(t, err)
	require.True(t, voted)

	choice, err := ledger.GetUserVote(id, yes)
	require.NoError(t, err)
	require.True(t, choice)

	choice, err = ledger.GetUserVote(id, no)
	require.NoError(t, err)
	require.False(t, choice)

	voted, err = ledger.HasUserVoted(id, "somebody")
	require.NoError(t, err)
	require.False(t, voted)
}

func TestVoteFailures(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	eligible := TestMakeVoter(ctx, MinimumBalance)
	poor := TestMakeVoter(ctx, MinimumBalance-1)

	{ // unknown proposal
		_, err := ledger.Vote(ctx.As(eligible), 999, true)
		require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))

		_, err = ledger.Vote(ctx.As(eligible), 0, true)
		require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))
	}

	{ // balance under the minimum
		_, err := ledger.Vote(ctx.As(poor), id, true)
		require.Equal(t, errors.VoterIneligible.Code, errors.Code(err))

		// unknown address has no balance
		_, err = ledger.Vote(ctx.As("nobody"), id, true)
		require.Equal(t, errors.VoterIneligible.Code, errors.Code(err))
	}

	{ // not found is checked before eligibility
		_, err := ledger.Vote(ctx.As(poor), 999, true)
		require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))
	}

	{ // double vote
		_, err := ledger.Vote(ctx.As(eligible), id, true)
		require.NoError(t, err)

		_, err = ledger.Vote(ctx.As(eligible), id, false)
		require.Equal(t, errors.AlreadyVoted, err)

		choice, err := ledger.GetUserVote(id, eligible)
		require.NoError(t, err)
		require.True(t, choice)
	}

	{ // eligibility is checked at every vote
		ctx.Balances[eligible] = 0
		_, err := ledger.Vote(ctx.As(eligible), id, true)
		require.Equal(t, errors.VoterIneligible.Code, errors.Code(err))
	}

	counts, err := ledger.GetVoteCounts(id)
	require.NoError(t, err)
	require.Equal(t, VoteCounts{Yes: 1, No: 0, Total: 1}, counts)
}

func TestVoteAfterVotingPeriod(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(10, "proposer")
	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	voter := TestMakeVoter(ctx, common.AmountPerCoin)
	ctx.Mine(VotingPeriod * 3)

	_, err = ledger.Vote(ctx.As(voter), id, true)
	require.NoError(t, err)

	remaining, err := ledger.GetRemainingBlocks(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint64(0), remaining)
}

func TestVoteFinalizedProposal(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(10, "proposer")
	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	ctx.Mine(VotingPeriod)
	_, err = ledger.FinalizeProposal(ctx, id)
	require.NoError(t, err)

	voter := TestMakeVoter(ctx, common.AmountPerCoin)
	_, err = ledger.Vote(ctx.As(voter), id, true)
	require.Equal(t, errors.ProposalAlreadyFinalized, err)

	voted, err := ledger.HasUserVoted(id, voter)
	require.NoError(t, err)
	require.False(t, voted)

	// the eligibility is checked before the finalized state
	poor := TestMakeVoter(ctx, MinimumBalance-1)
	_, err = ledger.Vote(ctx.As(poor), id, true)
	require.Equal(t, errors.VoterIneligible.Code, errors.Code(err))
}

func TestFinalizeProposal(t *testing.T) {
	cases := []struct {
		name   string
		yes    int
		no     int
		passed bool
	}{
		{"no votes", 0, 0, false},
		{"majority yes", 2, 1, true},
		{"majority no", 1, 2, false},
		{"tie", 2, 2, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			ledger, st := TestMakeLedger()
			defer st.Close()

			ctx := NewTestChainContext(5, "proposer")
			id, _, err := ledger.CreateProposal(ctx, "T", "D")
			require.NoError(t, err)

			for i := 0; i < c.yes+c.no; i++ {
				voter := TestMakeVoter(ctx, MinimumBalance)
				_, err := ledger.Vote(ctx.As(voter), id, i < c.yes)
				require.NoError(t, err)
			}

			ctx.Mine(VotingPeriod)
			events, err := ledger.FinalizeProposal(ctx, id)
			require.NoError(t, err)
			require.Equal(t, []Event{
				ProposalFinalized{ID: id, Passed: c.passed, YesVotes: uint64(c.yes), NoVotes: uint64(c.no)},
			}, events)

			p, err := ledger.GetProposal(id)
			require.NoError(t, err)
			require.True(t, p.Finalized)
			require.Equal(t, c.passed, p.Passed)
		})
	}
}

func TestFinalizeProposalFailures(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(100, "proposer")

	_, err := ledger.FinalizeProposal(ctx, 1)
	require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))

	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	ctx.Mine(VotingPeriod - 1)
	_, err = ledger.FinalizeProposal(ctx, id)
	require.Equal(t, errors.VotingPeriodNotEnded.Code, errors.Code(err))
	require.Equal(t, uint64(1), err.(*errors.Error).Data["remaining_blocks"])

	ctx.Mine(1)
	_, err = ledger.FinalizeProposal(ctx, id)
	require.NoError(t, err)

	_, err = ledger.FinalizeProposal(ctx, id)
	require.Equal(t, errors.ProposalAlreadyFinalized, err)
}

func TestCanVote(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	rich := TestMakeVoter(ctx, MinimumBalance)
	poor := TestMakeVoter(ctx, MinimumBalance-1)

	ok, err := ledger.CanVote(ctx, rich)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = ledger.CanVote(ctx, poor)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestCanFinalizeProposalAndRemainingBlocks(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(50, "proposer")

	ok, err := ledger.CanFinalizeProposal(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	_, err = ledger.GetRemainingBlocks(ctx, 1)
	require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))

	id, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	for i := uint64(0); i < VotingPeriod; i++ {
		remaining, err := ledger.GetRemainingBlocks(ctx, id)
		require.NoError(t, err)
		require.Equal(t, VotingPeriod-i, remaining)

		ok, err := ledger.CanFinalizeProposal(ctx, id)
		require.NoError(t, err)
		require.False(t, ok)

		ctx.Mine(1)
	}

	ok, err = ledger.CanFinalizeProposal(ctx, id)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = ledger.FinalizeProposal(ctx, id)
	require.NoError(t, err)

	ok, err = ledger.CanFinalizeProposal(ctx, id)
	require.NoError(t, err)
	require.False(t, ok)

	remaining, err := ledger.GetRemainingBlocks(ctx, id)
	require.NoError(t, err)
	require.Equal(t, uint64(0), remaining)
}

func TestGetProposalNotFound(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	_, err := ledger.GetProposal(1)
	require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))

	_, err = ledger.GetVoteCounts(1)
	require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))
}

func TestGetProposals(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	for i := 0; i < 12; i++ {
		_, _, err := ledger.CreateProposal(ctx, "T", "D")
		require.NoError(t, err)
	}

	collect := func(options storage.ListOptions) (ids []uint64, cursor []byte) {
		iterFunc, closeFunc := ledger.GetProposals(options)
		defer closeFunc()
		for {
			p, hasNext, c := iterFunc()
			if !hasNext {
				break
			}
			ids = append(ids, p.ID)
			cursor = c
		}
		return
	}

	ids, cursor := collect(storage.NewDefaultListOptions(false, nil, 10))
	require.Equal(t, []uint64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, ids)

	ids, _ = collect(storage.NewDefaultListOptions(false, cursor, 10))
	require.Equal(t, []uint64{11, 12}, ids)

	ids, _ = collect(storage.NewDefaultListOptions(true, nil, 3))
	require.Equal(t, []uint64{12, 11, 10}, ids)
}

func TestGetProposalsSkipsBrokenRecord(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	for i := 0; i < 3; i++ {
		_, _, err := ledger.CreateProposal(ctx, "T", "D")
		require.NoError(t, err)
	}
	require.NoError(t, st.Core.Put([]byte(GetProposalKey(2)), []byte("{broken"), nil))

	iterFunc, closeFunc := ledger.GetProposals(storage.NewDefaultListOptions(false, nil, 0))
	defer closeFunc()

	var ids []uint64
	for {
		p, hasNext, _ := iterFunc()
		if !hasNext {
			break
		}
		ids = append(ids, p.ID)
	}
	require.Equal(t, []uint64{1, 3}, ids)
}

func TestLedgerJoinsTransaction(t *testing.T) {
	_, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")

	ts, err := st.OpenTransaction()
	require.NoError(t, err)

	id, _, err := NewLedger(ts).CreateProposal(ctx, "T", "D")
	require.NoError(t, err)
	require.Equal(t, uint64(1), id)

	// not visible before commit
	_, err = NewLedger(st).GetProposal(id)
	require.Equal(t, errors.ProposalNotFound.Code, errors.Code(err))

	require.NoError(t, ts.Discard())

	count, err := NewLedger(st).ProposalCount()
	require.NoError(t, err)
	require.Equal(t, uint64(0), count)
}

// The scenario of a proposal from creation to finalization.
func TestProposalLifecycle(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(100, "proposer")
	voter := TestMakeVoter(ctx, common.AmountPerCoin)

	_, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	p, err := ledger.GetProposal(1)
	require.NoError(t, err)
	id, title, description, createdAt, yesVotes, noVotes, finalized, passed, proposer := p.Tuple()
	require.Equal(t, uint64(1), id)
	require.Equal(t, "T", title)
	require.Equal(t, "D", description)
	require.Equal(t, uint64(100), createdAt)
	require.Equal(t, uint64(0), yesVotes)
	require.Equal(t, uint64(0), noVotes)
	require.False(t, finalized)
	require.False(t, passed)
	require.Equal(t, "proposer", proposer)

	_, err = ledger.Vote(ctx.As(voter), 1, true)
	require.NoError(t, err)

	counts, err := ledger.GetVoteCounts(1)
	require.NoError(t, err)
	require.Equal(t, VoteCounts{Yes: 1, No: 0, Total: 1}, counts)

	ctx.Height = 119
	ok, err := ledger.CanFinalizeProposal(ctx, 1)
	require.NoError(t, err)
	require.False(t, ok)

	ctx.Height = 120
	ok, err = ledger.CanFinalizeProposal(ctx, 1)
	require.NoError(t, err)
	require.True(t, ok)

	_, err = ledger.FinalizeProposal(ctx, 1)
	require.NoError(t, err)

	p, err = ledger.GetProposal(1)
	require.NoError(t, err)
	require.True(t, p.Finalized)
	require.True(t, p.Passed)
}

// An ineligible voter is rejected and the tallies stay the same.
func TestIneligibleVoterScenario(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	poor := TestMakeVoter(ctx, common.AmountPerCoin/20)

	_, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	_, err = ledger.Vote(ctx.As(poor), 1, true)
	require.Equal(t, errors.VoterIneligible.Code, errors.Code(err))

	counts, err := ledger.GetVoteCounts(1)
	require.NoError(t, err)
	require.Equal(t, VoteCounts{}, counts)

	voted, err := ledger.HasUserVoted(1, poor)
	require.NoError(t, err)
	require.False(t, voted)
}

// A tie fails.
func TestTieScenario(t *testing.T) {
	ledger, st := TestMakeLedger()
	defer st.Close()

	ctx := NewTestChainContext(1, "proposer")
	a := TestMakeVoter(ctx, common.AmountPerCoin)
	b := TestMakeVoter(ctx, common.AmountPerCoin)

	_, _, err := ledger.CreateProposal(ctx, "T", "D")
	require.NoError(t, err)

	_, err = ledger.Vote(ctx.As(a), 1, true)
	require.NoError(t, err)
	_, err = ledger.Vote(ctx.As(b), 1, false)
	require.NoError(t, err)

	ctx.Mine(VotingPeriod)
	_, err = ledger.FinalizeProposal(ctx, 1)
	require.NoError(t, err)

	p, err := ledger.GetProposal(1)
	require.NoError(t, err)
	require.True(t, p.Finalized)
	require.False(t, p.Passed)
}
