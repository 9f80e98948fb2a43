package operation

import (
	"encoding/json"
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"boscoin.io/minidao/lib/common"
)

type Vote struct {
	ProposalID uint64 `json:"proposal_id"`
	Choice     bool   `json:"choice"`
}

func NewVote(proposalID uint64, choice bool) Vote {
	return Vote{
		ProposalID: proposalID,
		Choice:     choice,
	}
}

func (o Vote) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

// EncodeRLP encodes the choice as 0 or 1; rlp has no boolean kind.
func (o Vote) EncodeRLP(w io.Writer) error {
	var choice uint
	if o.Choice {
		choice = 1
	}

	return rlp.Encode(w, []interface{}{o.ProposalID, choice})
}

func (o Vote) IsWellFormed(common.Config) error {
	return nil
}

func (o Vote) TargetProposal() uint64 {
	return o.ProposalID
}
