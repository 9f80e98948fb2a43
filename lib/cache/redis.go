package cache

import (
	"strconv"

	redisCache "github.com/go-redis/cache"
	"github.com/go-redis/redis"
	"github.com/vmihailenco/msgpack"

	"boscoin.io/minidao/lib/governance"
)

const redisKeyPrefix = "minidao-proposal-"

type RedisCacheAdapter struct {
	store *redisCache.Codec
}

type RedisRingOptions redis.RingOptions

func NewRedisCacheAdapter(opt *RedisRingOptions) *RedisCacheAdapter {
	ropt := redis.RingOptions(*opt)

	return &RedisCacheAdapter{
		&redisCache.Codec{
			Redis: redis.NewRing(&ropt),
			Marshal: func(v interface{}) ([]byte, error) {
				return msgpack.Marshal(v)
			},
			Unmarshal: func(b []byte, v interface{}) error {
				return msgpack.Unmarshal(b, v)
			},
		},
	}
}

func redisKey(id uint64) string {
	return redisKeyPrefix + strconv.FormatUint(id, 10)
}

func (a *RedisCacheAdapter) Get(id uint64) (governance.Proposal, bool) {
	var p governance.Proposal
	if err := a.store.Get(redisKey(id), &p); err != nil {
		return governance.Proposal{}, false
	}

	return p, true
}

func (a *RedisCacheAdapter) Set(p governance.Proposal) {
	if err := a.store.Set(&redisCache.Item{
		Key:    redisKey(p.ID),
		Object: p,
	}); err != nil {
		log.Error("failed to cache proposal", "id", p.ID, "error", err)
	}
}

func (a *RedisCacheAdapter) Remove(id uint64) {
	a.store.Delete(redisKey(id))
}
