package cache

import (
	"github.com/hashicorp/golang-lru"

	"boscoin.io/minidao/lib/governance"
)

type MemCacheAdapter struct {
	lruCache *lru.Cache
}

func NewMemCacheAdapter(size int) *MemCacheAdapter {
	lruCache, err := lru.New(size)
	if err != nil {
		panic(err)
	}

	return &MemCacheAdapter{
		lruCache: lruCache,
	}
}

func (a *MemCacheAdapter) Get(id uint64) (governance.Proposal, bool) {
	value, ok := a.lruCache.Get(id)
	if !ok {
		return governance.Proposal{}, false
	}

	p, ok := value.(governance.Proposal)
	return p, ok
}

func (a *MemCacheAdapter) Set(p governance.Proposal) {
	a.lruCache.Add(p.ID, p)
}

func (a *MemCacheAdapter) Remove(id uint64) {
	a.lruCache.Remove(id)
}
