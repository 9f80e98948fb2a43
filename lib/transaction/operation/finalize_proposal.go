package operation

import (
	"encoding/json"

	"boscoin.io/minidao/lib/common"
)

type FinalizeProposal struct {
	ProposalID uint64 `json:"proposal_id"`
}

func NewFinalizeProposal(proposalID uint64) FinalizeProposal {
	return FinalizeProposal{ProposalID: proposalID}
}

func (o FinalizeProposal) Serialize() (encoded []byte, err error) {
	return json.Marshal(o)
}

func (o FinalizeProposal) IsWellFormed(common.Config) error {
	return nil
}

func (o FinalizeProposal) TargetProposal() uint64 {
	return o.ProposalID
}
