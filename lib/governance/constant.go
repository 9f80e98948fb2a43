package governance

import (
	"boscoin.io/minidao/lib/common"
)

const (
	// VotingPeriod is the number of blocks a proposal stays open before it
	// can be finalized.
	VotingPeriod uint64 = 20

	// MinimumBalance is the balance an address needs to vote, 0.1 coin.
	MinimumBalance common.Amount = common.AmountPerCoin / 10
)

const (
	proposalCountKey  string = "gp-count"
	proposalPrefixID  string = "gp-id-"
	voteRecordPrefix  string = "gv-"
	maxIDStringLength int    = 20
)
