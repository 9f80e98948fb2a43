package governance

import (
	"fmt"

	"boscoin.io/minidao/lib/common"
)

// Proposal is a question put to the voters. `Title`, `Description`,
// `CreatedAtHeight` and `Proposer` never change; the tallies change until
// the proposal is finalized. `Passed` is meaningful only when `Finalized`.
//
// models
//  * 'id'
// 	- 'gp-id-<zero padded Proposal.ID>': `Proposal`
//  * 'count'
// 	- 'gp-count': the number of created proposals
type Proposal struct {
	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	CreatedAtHeight uint64 `json:"created_at_height"`
	YesVotes        uint64 `json:"yes_votes"`
	NoVotes         uint64 `json:"no_votes"`
	Finalized       bool   `json:"finalized"`
	Passed          bool   `json:"passed"`
	Proposer        string `json:"proposer"`
}

// Tuple returns the fields in the order of
// (id, title, description, createdAtHeight, yesVotes, noVotes, finalized,
// passed, proposer).
func (p Proposal) Tuple() (uint64, string, string, uint64, uint64, uint64, bool, bool, string) {
	return p.ID, p.Title, p.Description, p.CreatedAtHeight, p.YesVotes, p.NoVotes, p.Finalized, p.Passed, p.Proposer
}

func (p Proposal) VoteCounts() VoteCounts {
	return VoteCounts{
		Yes:   p.YesVotes,
		No:    p.NoVotes,
		Total: p.YesVotes + p.NoVotes,
	}
}

// EndHeight is the first height the proposal can be finalized at.
func (p Proposal) EndHeight() uint64 {
	return p.CreatedAtHeight + VotingPeriod
}

// RemainingBlocks returns the blocks left until the voting period ends at
// height.
func (p Proposal) RemainingBlocks(height uint64) uint64 {
	if p.Finalized || height >= p.EndHeight() {
		return 0
	}

	return p.EndHeight() - height
}

func (p Proposal) String() string {
	return string(common.MustMarshalJSON(p))
}

func GetProposalKey(id uint64) string {
	return fmt.Sprintf("%s%0*d", proposalPrefixID, maxIDStringLength, id)
}

// VoteRecord is the vote of one address on one proposal. Once `HasVoted`
// it never changes.
//
// models
// 	- 'gv-<zero padded Proposal.ID>-<address>': `VoteRecord`
type VoteRecord struct {
	HasVoted bool `json:"has_voted"`
	Choice   bool `json:"choice"`
}

func GetVoteRecordKey(id uint64, address string) string {
	return fmt.Sprintf("%s%0*d-%s", voteRecordPrefix, maxIDStringLength, id, address)
}

type VoteCounts struct {
	Yes   uint64 `json:"yes"`
	No    uint64 `json:"no"`
	Total uint64 `json:"total"`
}

// YesPercentage is the integer percent of yes votes; 0 without votes.
func (v VoteCounts) YesPercentage() uint64 {
	if v.Total == 0 {
		return 0
	}

	return v.Yes * 100 / v.Total
}

func (v VoteCounts) NoPercentage() uint64 {
	if v.Total == 0 {
		return 0
	}

	return v.No * 100 / v.Total
}
