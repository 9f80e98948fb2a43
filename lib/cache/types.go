//
// Caches the finalized proposals. A finalized proposal never changes, so
// the cached value does not need to be expired.
//
package cache

import (
	"boscoin.io/minidao/lib/governance"
)

type Adapter interface {
	Get(id uint64) (governance.Proposal, bool)
	Set(proposal governance.Proposal)
	Remove(id uint64)
}
