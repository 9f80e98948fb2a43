package cache

import (
	logging "github.com/inconshreveable/log15"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/governance"
)

var log logging.Logger = logging.New("module", "cache")

func init() {
	SetLogging(common.DefaultLogLevel, common.DefaultLogHandler)
}

func SetLogging(level logging.Lvl, handler logging.Handler) {
	log.SetHandler(logging.LvlFilterHandler(level, handler))
}

// Client reads the proposals from the ledger through the adapter. Only
// the finalized proposals are kept in the adapter.
type Client struct {
	adapter Adapter
}

func NewClient(adapter Adapter) *Client {
	if adapter == nil {
		adapter = NopAdapter{}
	}

	return &Client{adapter: adapter}
}

func (c *Client) GetProposal(ledger *governance.Ledger, id uint64) (governance.Proposal, error) {
	if p, ok := c.adapter.Get(id); ok {
		log.Debug("proposal from cache", "id", id)
		return p, nil
	}

	p, err := ledger.GetProposal(id)
	if err != nil {
		return p, err
	}

	if p.Finalized {
		c.adapter.Set(p)
	}

	return p, nil
}
