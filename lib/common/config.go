package common

import (
	"time"
)

const (
	ProposalCacheAdapterMem   = "mem"
	ProposalCacheAdapterRedis = "redis"

	ProposalCachePoolSize = 10000
)

//
// Config has the block production and transaction limits of a node, and
// the settings of its outer surface.
//
type Config struct {
	BlockTime time.Duration

	TxsLimit int
	OpsLimit int

	NetworkID []byte

	// Those fields are not related with the ledger state
	RateLimitRuleAPI RateLimitRule

	ProposalCacheAdapter    string
	ProposalCachePoolSize   int
	ProposalCacheRedisAddrs map[string]string
}

func NewConfig(networkID []byte) Config {
	p := Config{}

	p.BlockTime = 5 * time.Second

	p.TxsLimit = 1000
	p.OpsLimit = MaxOperationsInTransaction
	p.NetworkID = networkID

	p.RateLimitRuleAPI = NewRateLimitRule(RateLimitAPI)

	p.ProposalCacheAdapter = ProposalCacheAdapterMem
	p.ProposalCachePoolSize = ProposalCachePoolSize

	return p
}
