package api

import (
	"fmt"
	"strconv"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/cache"
	"boscoin.io/minidao/lib/common/observer"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/node"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

const APIVersionV1 = "v1"

// API Endpoint patterns
const (
	GetNodeInfoPattern                 = "/"
	GetProposalsHandlerPattern         = "/proposals"
	GetProposalHandlerPattern          = "/proposals/{id}"
	GetProposalVotesHandlerPattern     = "/proposals/{id}/votes"
	GetProposalVoterHandlerPattern     = "/proposals/{id}/voters/{address}"
	GetAccountHandlerPattern           = "/accounts/{id}"
	GetBlockHandlerPattern             = "/blocks/{height}"
	GetTransactionByHashHandlerPattern = "/transactions/{id}"
	PostTransactionPattern             = "/transactions"
	PostSubscribePattern               = "/subscribe"
)

type NetworkHandlerAPI struct {
	storage   *storage.LevelDBBackend
	cache     *cache.Client
	urlPrefix string
	version   string

	SubmitTransaction func(transaction.Transaction) (block.BlockTransaction, error)
	ChainContext      func(caller string) (governance.ChainContext, error)
	NodeInfo          func() (node.NodeInfo, error)
}

func NewNetworkHandlerAPI(st *storage.LevelDBBackend, cacheClient *cache.Client, urlPrefix string) *NetworkHandlerAPI {
	if cacheClient == nil {
		cacheClient = cache.NewClient(nil)
	}

	return &NetworkHandlerAPI{
		storage:   st,
		cache:     cacheClient,
		urlPrefix: urlPrefix,
		version:   APIVersionV1,
	}
}

func (api NetworkHandlerAPI) HandlerURLPattern(pattern string) string {
	return fmt.Sprintf("%s/%s%s", api.urlPrefix, api.version, pattern)
}

func (api NetworkHandlerAPI) ledger() *governance.Ledger {
	return governance.NewLedger(api.storage)
}

// TriggerEvent publishes the governance events to the subscribers of all
// proposals, of the proposal id and of the event type.
func TriggerEvent(events []governance.Event) {
	var (
		t    = observer.ResourceObserver.Trigger
		cond = observer.NewCondition
	)

	for _, e := range events {
		id := strconv.FormatUint(e.ProposalID(), 10)
		m := NewMessage(e)

		t(cond(observer.ResourceProposal, observer.ConditionAll).Event(), m)
		t(cond(observer.ResourceProposal, observer.ConditionID, id).Event(), m)
		t(cond(observer.ResourceProposal, observer.ConditionType, string(e.Type())).Event(), m)
	}
}

func TriggerBlock(blk block.Block) {
	observer.ResourceObserver.Trigger(observer.NewCondition(observer.ResourceBlock, observer.ConditionAll).Event(), NewMessage(blk))
}
