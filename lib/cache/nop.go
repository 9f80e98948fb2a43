package cache

import (
	"boscoin.io/minidao/lib/governance"
)

type NopAdapter struct{}

func (NopAdapter) Get(uint64) (governance.Proposal, bool) {
	return governance.Proposal{}, false
}

func (NopAdapter) Set(governance.Proposal) {}

func (NopAdapter) Remove(uint64) {}
