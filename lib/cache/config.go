package cache

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
)

// NewAdapter makes the adapter set in `common.Config`; the empty adapter
// name disables the cache.
func NewAdapter(conf common.Config) (Adapter, error) {
	switch conf.ProposalCacheAdapter {
	case "":
		return NopAdapter{}, nil
	case common.ProposalCacheAdapterMem:
		size := conf.ProposalCachePoolSize
		if size < 1 {
			size = common.ProposalCachePoolSize
		}
		return NewMemCacheAdapter(size), nil
	case common.ProposalCacheAdapterRedis:
		if len(conf.ProposalCacheRedisAddrs) < 1 {
			return nil, errors.New("redis addresses are empty")
		}
		return NewRedisCacheAdapter(&RedisRingOptions{
			Addrs: conf.ProposalCacheRedisAddrs,
		}), nil
	default:
		return nil, errors.New("adapter not found")
	}
}
