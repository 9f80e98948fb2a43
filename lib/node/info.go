package node

import (
	"time"

	"boscoin.io/minidao/lib/common"
)

type NodeInfo struct {
	Node       NodeInfoNode       `json:"node"`
	Policy     NodePolicy         `json:"policy"`
	Block      NodeBlockInfo      `json:"block"`
	Governance NodeGovernanceInfo `json:"governance"`
}

type NodeInfoNode struct {
	Version  NodeVersion `json:"version"`
	Started  string      `json:"started"`
	Endpoint string      `json:"endpoint"`
}

type NodePolicy struct {
	NetworkID        string        `json:"network-id"`         // network id
	BlockTime        time.Duration `json:"block-time"`         // block creation time
	RateLimitRuleAPI string        `json:"rate-limit-api"`     // per client ip
	OperationsLimit  int           `json:"operations-limit"`   // operations limit in a transaction
	TransactionLimit int           `json:"transactions-limit"` // transactions limit in a block
}

type NodeBlockInfo struct {
	Height    uint64 `json:"height"`
	Hash      string `json:"hash"`
	TotalTxs  uint64 `json:"total-txs"`
	Confirmed string `json:"confirmed"`
}

// NodeGovernanceInfo has the constants of the governance ledger and the
// number of proposals.
type NodeGovernanceInfo struct {
	MinimumBalance common.Amount `json:"minimum-balance"`
	VotingPeriod   uint64        `json:"voting-period"`
	ProposalCount  uint64        `json:"proposal-count"`
}

type NodeVersion struct {
	Version   string `json:"version"`
	GitCommit string `json:"git-commit"`
	GitState  string `json:"git-state"`
	BuildDate string `json:"build-date"`
}
