package resource

import (
	"strconv"
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/governance"
)

// Proposal is the proposal seen at `Height`; the remaining blocks and
// whether it can be finalized are decided by the height.
type Proposal struct {
	p      governance.Proposal
	height uint64
}

func NewProposal(p governance.Proposal, height uint64) *Proposal {
	return &Proposal{p: p, height: height}
}

func (p Proposal) GetMap() hal.Entry {
	counts := p.p.VoteCounts()
	return hal.Entry{
		"id":                p.p.ID,
		"title":             p.p.Title,
		"description":       p.p.Description,
		"proposer":          p.p.Proposer,
		"created_at_height": p.p.CreatedAtHeight,
		"end_height":        p.p.EndHeight(),
		"yes_votes":         p.p.YesVotes,
		"no_votes":          p.p.NoVotes,
		"yes_percentage":    counts.YesPercentage(),
		"no_percentage":     counts.NoPercentage(),
		"finalized":         p.p.Finalized,
		"passed":            p.p.Passed,
		"remaining_blocks":  p.p.RemainingBlocks(p.height),
		"can_finalize":      !p.p.Finalized && p.height >= p.p.EndHeight(),
	}
}

func (p Proposal) Resource() *hal.Resource {
	r := hal.NewResource(p, p.LinkSelf())
	r.AddLink("votes", hal.NewLink(replaceProposalID(URLProposalVotes, p.p.ID)))
	r.AddLink("voter", hal.NewLink(replaceProposalID(URLProposalVoter, p.p.ID), hal.LinkAttr{"templated": true}))
	r.AddLink("proposer", hal.NewLink(strings.Replace(URLAccounts, "{id}", p.p.Proposer, -1)))
	return r
}

func (p Proposal) LinkSelf() string {
	return replaceProposalID(URLProposal, p.p.ID)
}

func (p Proposal) MarshalJSON() ([]byte, error) {
	r := p.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}

type VoteCounts struct {
	id     uint64
	counts governance.VoteCounts
}

func NewVoteCounts(id uint64, counts governance.VoteCounts) *VoteCounts {
	return &VoteCounts{id: id, counts: counts}
}

func (v VoteCounts) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id":    v.id,
		"yes":            v.counts.Yes,
		"no":             v.counts.No,
		"total":          v.counts.Total,
		"yes_percentage": v.counts.YesPercentage(),
		"no_percentage":  v.counts.NoPercentage(),
	}
}

func (v VoteCounts) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("proposal", hal.NewLink(replaceProposalID(URLProposal, v.id)))
	return r
}

func (v VoteCounts) LinkSelf() string {
	return replaceProposalID(URLProposalVotes, v.id)
}

// Voter is the vote of an address on a proposal; `choice` is false when
// the address has not voted.
type Voter struct {
	id       uint64
	address  string
	hasVoted bool
	choice   bool
	canVote  bool
}

func NewVoter(id uint64, address string, hasVoted, choice, canVote bool) *Voter {
	return &Voter{
		id:       id,
		address:  address,
		hasVoted: hasVoted,
		choice:   choice,
		canVote:  canVote,
	}
}

func (v Voter) GetMap() hal.Entry {
	return hal.Entry{
		"proposal_id": v.id,
		"address":     v.address,
		"has_voted":   v.hasVoted,
		"choice":      v.choice,
		"can_vote":    v.canVote,
	}
}

func (v Voter) Resource() *hal.Resource {
	r := hal.NewResource(v, v.LinkSelf())
	r.AddLink("proposal", hal.NewLink(replaceProposalID(URLProposal, v.id)))
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", v.address, -1)))
	return r
}

func (v Voter) LinkSelf() string {
	return strings.Replace(replaceProposalID(URLProposalVoter, v.id), "{address}", v.address, -1)
}

func replaceProposalID(url string, id uint64) string {
	return strings.Replace(url, "{id}", strconv.FormatUint(id, 10), -1)
}
