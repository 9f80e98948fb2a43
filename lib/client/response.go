package client

import (
	"encoding/json"
	"fmt"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/node"
)

type Problem struct {
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Status   int                    `json:"status"`
	Detail   string                 `json:"detail,omitempty"`
	Instance string                 `json:"instance,omitempty"`
	Code     uint                   `json:"code,omitempty"`
	Data     map[string]interface{} `json:"data,omitempty"`
}

// Error is the problem replied by the node.
type Error struct {
	Problem Problem
}

func (e Error) Error() string {
	return fmt.Sprintf("%s (status=%d code=%d)", e.Problem.Title, e.Problem.Status, e.Problem.Code)
}

type Link struct {
	Href      string `json:"href"`
	Templated bool   `json:"templated,omitempty"`
}

type NodeInfo struct {
	Links struct {
		Self      Link `json:"self"`
		Proposals Link `json:"proposals"`
		Subscribe Link `json:"subscribe"`
	} `json:"_links"`

	Node       node.NodeInfoNode       `json:"node"`
	Policy     node.NodePolicy         `json:"policy"`
	Block      node.NodeBlockInfo      `json:"block"`
	Governance node.NodeGovernanceInfo `json:"governance"`
}

type Proposal struct {
	Links struct {
		Self     Link `json:"self"`
		Votes    Link `json:"votes"`
		Voter    Link `json:"voter"`
		Proposer Link `json:"proposer"`
	} `json:"_links"`

	ID              uint64 `json:"id"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	Proposer        string `json:"proposer"`
	CreatedAtHeight uint64 `json:"created_at_height"`
	EndHeight       uint64 `json:"end_height"`
	YesVotes        uint64 `json:"yes_votes"`
	NoVotes         uint64 `json:"no_votes"`
	YesPercentage   uint64 `json:"yes_percentage"`
	NoPercentage    uint64 `json:"no_percentage"`
	Finalized       bool   `json:"finalized"`
	Passed          bool   `json:"passed"`
	RemainingBlocks uint64 `json:"remaining_blocks"`
	CanFinalize     bool   `json:"can_finalize"`
}

type ProposalsPage struct {
	Links struct {
		Self Link `json:"self"`
		Next Link `json:"next"`
		Prev Link `json:"prev"`
	} `json:"_links"`
	Embedded struct {
		Records []Proposal `json:"records"`
	} `json:"_embedded"`
}

type VoteCounts struct {
	Links struct {
		Self     Link `json:"self"`
		Proposal Link `json:"proposal"`
	} `json:"_links"`

	ProposalID    uint64 `json:"proposal_id"`
	Yes           uint64 `json:"yes"`
	No            uint64 `json:"no"`
	Total         uint64 `json:"total"`
	YesPercentage uint64 `json:"yes_percentage"`
	NoPercentage  uint64 `json:"no_percentage"`
}

type Voter struct {
	Links struct {
		Self     Link `json:"self"`
		Proposal Link `json:"proposal"`
		Account  Link `json:"account"`
	} `json:"_links"`

	ProposalID uint64 `json:"proposal_id"`
	Address    string `json:"address"`
	HasVoted   bool   `json:"has_voted"`
	Choice     bool   `json:"choice"`
	CanVote    bool   `json:"can_vote"`
}

type Account struct {
	Links struct {
		Self Link `json:"self"`
	} `json:"_links"`

	Address    string        `json:"address"`
	SequenceID uint64        `json:"sequence_id"`
	Balance    common.Amount `json:"balance"`
	CanVote    bool          `json:"can_vote"`
}

type Block struct {
	Links struct {
		Self Link `json:"self"`
		Prev Link `json:"prev"`
	} `json:"_links"`

	Hash         string   `json:"hash"`
	Height       uint64   `json:"height"`
	PrevHash     string   `json:"prev_hash"`
	Confirmed    string   `json:"confirmed"`
	TotalTxs     uint64   `json:"total_txs"`
	Transactions []string `json:"transactions"`
}

type Transaction struct {
	Links struct {
		Self    Link `json:"self"`
		Account Link `json:"account"`
		Block   Link `json:"block"`
	} `json:"_links"`

	Hash        string            `json:"hash"`
	BlockHeight uint64            `json:"block_height"`
	Index       uint64            `json:"index"`
	Source      string            `json:"source"`
	SequenceID  uint64            `json:"sequence_id"`
	Created     string            `json:"created"`
	Operations  []string          `json:"operations"`
	Events      []json.RawMessage `json:"events"`
}
