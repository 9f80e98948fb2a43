//
// NodeRunner bridges together the storage, the governance ledger and the
// http api. It orders the submitted transactions, applies them to the
// ledger and closes a block at every `BlockTime`.
//
package runner

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/cache"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/metrics"
	"boscoin.io/minidao/lib/network"
	"boscoin.io/minidao/lib/node"
	"boscoin.io/minidao/lib/node/runner/api"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
	"boscoin.io/minidao/lib/version"
)

type NodeRunner struct {
	sync.Mutex

	conf     common.Config
	storage  *storage.LevelDBBackend
	cache    *cache.Client
	endpoint string
	started  time.Time

	pending []string // hashes of the transactions applied in the block being built

	stop     chan struct{}
	stopOnce sync.Once

	handleTransactionCheckerFuncs []common.CheckerFunc
}

// NewNodeRunner needs the genesis block in the storage.
func NewNodeRunner(st *storage.LevelDBBackend, conf common.Config) (nr *NodeRunner, err error) {
	if _, err = block.GetGenesis(st); err != nil {
		return
	}

	var adapter cache.Adapter
	if adapter, err = cache.NewAdapter(conf); err != nil {
		return
	}

	nr = &NodeRunner{
		conf:    conf,
		storage: st,
		cache:   cache.NewClient(adapter),
		stop:    make(chan struct{}),

		handleTransactionCheckerFuncs: DefaultSubmitTransactionCheckerFuncs,
	}

	return
}

func (nr *NodeRunner) Conf() common.Config {
	return nr.conf
}

func (nr *NodeRunner) Storage() *storage.LevelDBBackend {
	return nr.storage
}

func (nr *NodeRunner) SetEndpoint(endpoint string) {
	nr.endpoint = endpoint
}

// Ready makes the http handler of the node.
func (nr *NodeRunner) Ready() http.Handler {
	router := mux.NewRouter()

	router.Use(
		network.RecoverMiddleware(false),
		network.RateLimitMiddleware(nr.conf.RateLimitRuleAPI),
		network.CORSMiddleware([]string{"*"}),
		network.MetricsMiddleware,
	)

	router.Handle(network.UrlPathPrefixMetric, promhttp.Handler()).Methods("GET")
	router.Handle(network.UrlPathPrefixJSONRPC, nr.JSONRPCHandler()).Methods("POST", "OPTIONS")

	apiHandler := api.NewNetworkHandlerAPI(nr.storage, nr.cache, network.UrlPathPrefixAPI)
	apiHandler.SubmitTransaction = nr.SubmitTransaction
	apiHandler.ChainContext = nr.ChainContext
	apiHandler.NodeInfo = nr.NodeInfo

	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetNodeInfoPattern),
		apiHandler.GetNodeInfoHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetProposalsHandlerPattern),
		apiHandler.GetProposalsHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetProposalHandlerPattern),
		apiHandler.GetProposalHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetProposalVotesHandlerPattern),
		apiHandler.GetProposalVotesHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetProposalVoterHandlerPattern),
		apiHandler.GetProposalVoterHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetAccountHandlerPattern),
		apiHandler.GetAccountHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetBlockHandlerPattern),
		apiHandler.GetBlockHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.GetTransactionByHashHandlerPattern),
		apiHandler.GetTransactionByHashHandler,
	).Methods("GET", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostTransactionPattern),
		apiHandler.PostTransactionHandler,
	).Methods("POST", "OPTIONS")
	router.HandleFunc(
		apiHandler.HandlerURLPattern(api.PostSubscribePattern),
		apiHandler.PostSubscribeHandler,
	).Methods("POST", "OPTIONS")

	return router
}

// Start closes a block at every `BlockTime` until `Stop` is called. The
// empty block is closed too, so the voting periods keep going without
// transactions.
func (nr *NodeRunner) Start() error {
	nr.started = time.Now()
	log.Info("node runner started", "block-time", nr.conf.BlockTime, "endpoint", nr.endpoint)

	ticker := time.NewTicker(nr.conf.BlockTime)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if _, err := nr.CloseBlock(); err != nil {
				log.Error("failed to close block", "err", err)
			}
		case <-nr.stop:
			log.Info("node runner stopped")
			return nil
		}
	}
}

func (nr *NodeRunner) Stop() {
	nr.stopOnce.Do(func() {
		close(nr.stop)
	})
}

// CloseBlock saves the block of the transactions applied since the last
// block.
func (nr *NodeRunner) CloseBlock() (blk block.Block, err error) {
	nr.Lock()
	defer nr.Unlock()

	var latest block.Block
	if latest, err = block.GetLatestBlock(nr.storage); err != nil {
		return
	}

	blk = block.NewBlock(latest.Height+1, latest, nr.pending, common.NowISO8601())
	if err = blk.Save(nr.storage); err != nil {
		return
	}
	nr.pending = nil

	metrics.Block.SetHeight(blk.Height)
	metrics.Block.SetTotalTxs(blk.TotalTxs)
	metrics.Transaction.SetPending(0)

	log.Debug("block closed", "height", blk.Height, "hash", blk.Hash, "txs", len(blk.Transactions))

	api.TriggerBlock(blk)

	return
}

// SubmitTransaction applies the operations of tx to the ledger at the
// height of the block being built. The operations of tx are applied all
// or nothing.
func (nr *NodeRunner) SubmitTransaction(tx transaction.Transaction) (bt block.BlockTransaction, err error) {
	nr.Lock()
	defer nr.Unlock()

	defer func() {
		if err != nil {
			metrics.Transaction.AddRejected()
			log.Debug("transaction rejected", "hash", tx.GetHash(), "err", err)
		}
	}()

	if nr.conf.TxsLimit > 0 && len(nr.pending) >= nr.conf.TxsLimit {
		err = errors.TransactionPoolFull
		return
	}

	checker := &TransactionChecker{
		DefaultChecker: common.DefaultChecker{Funcs: nr.handleTransactionCheckerFuncs},
		NodeRunner:     nr,
		Transaction:    tx,
	}
	if err = common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		return
	}

	var events []governance.Event
	if bt, events, err = nr.applyTransaction(tx); err != nil {
		return
	}

	nr.pending = append(nr.pending, tx.GetHash())

	metrics.Transaction.AddAccepted()
	metrics.Transaction.SetPending(len(nr.pending))
	for _, e := range events {
		switch ev := e.(type) {
		case governance.ProposalCreated:
			metrics.Governance.AddProposal()
		case governance.VoteSubmitted:
			metrics.Governance.AddVote(ev.Choice)
		case governance.ProposalFinalized:
			metrics.Governance.AddFinalized(ev.Passed)
		}
	}

	log.Debug("transaction applied", "hash", tx.GetHash(), "height", bt.BlockHeight, "events", len(events))

	api.TriggerEvent(events)

	return
}

func (nr *NodeRunner) applyTransaction(tx transaction.Transaction) (bt block.BlockTransaction, events []governance.Event, err error) {
	var latest block.Block
	if latest, err = block.GetLatestBlock(nr.storage); err != nil {
		return
	}
	height := latest.Height + 1

	var ts *storage.LevelDBBackend
	if ts, err = nr.storage.OpenTransaction(); err != nil {
		return
	}

	defer func() {
		if err != nil {
			ts.Discard()
		}
	}()

	ledger := governance.NewLedger(ts)
	ctx := block.NewChainContext(ts, height, tx.Source())

	for _, op := range tx.B.Operations {
		var evs []governance.Event
		if evs, err = applyOperation(ledger, ctx, op); err != nil {
			metrics.Governance.AddRejected(string(op.H.Type), errors.Code(err))
			return
		}
		events = append(events, evs...)
	}

	var account *block.BlockAccount
	if account, err = getOrNewBlockAccount(ts, tx.Source()); err != nil {
		return
	}
	account.IncreaseSequenceID()
	if err = account.Save(ts); err != nil {
		return
	}

	var raw []json.RawMessage
	for _, e := range events {
		var b []byte
		if b, err = e.Serialize(); err != nil {
			return
		}
		raw = append(raw, json.RawMessage(b))
	}

	var message []byte
	if message, err = tx.Serialize(); err != nil {
		return
	}

	bt = block.NewBlockTransactionFromTransaction(height, uint64(len(nr.pending)), tx, message, raw)
	if err = bt.Save(ts); err != nil {
		return
	}

	err = ts.Commit()

	return
}

func applyOperation(ledger *governance.Ledger, ctx governance.ChainContext, op operation.Operation) (events []governance.Event, err error) {
	switch body := op.B.(type) {
	case operation.CreateProposal:
		_, events, err = ledger.CreateProposal(ctx, body.Title, body.Description)
	case operation.Vote:
		events, err = ledger.Vote(ctx, body.ProposalID, body.Choice)
	case operation.FinalizeProposal:
		events, err = ledger.FinalizeProposal(ctx, body.ProposalID)
	default:
		err = errors.UnknownOperationType.Clone().SetData("type", string(op.H.Type))
	}

	return
}

func getOrNewBlockAccount(st *storage.LevelDBBackend, address string) (*block.BlockAccount, error) {
	exists, err := block.ExistsBlockAccount(st, address)
	if err != nil {
		return nil, err
	}
	if !exists {
		return block.NewBlockAccount(address, 0), nil
	}

	return block.GetBlockAccount(st, address)
}

// ChainContext is the context of the read calls of the ledger; it sees the
// height of the block being built, like the submitted transactions.
func (nr *NodeRunner) ChainContext(caller string) (governance.ChainContext, error) {
	return block.NextChainContext(nr.storage, caller)
}

func (nr *NodeRunner) NodeInfo() (info node.NodeInfo, err error) {
	var latest block.Block
	if latest, err = block.GetLatestBlock(nr.storage); err != nil {
		return
	}

	var count uint64
	if count, err = governance.NewLedger(nr.storage).ProposalCount(); err != nil {
		return
	}

	info = node.NodeInfo{
		Node: node.NodeInfoNode{
			Version: node.NodeVersion{
				Version:   version.Version,
				GitCommit: version.GitCommit,
				GitState:  version.GitState,
				BuildDate: version.BuildDate,
			},
			Started:  common.FormatISO8601(nr.started),
			Endpoint: nr.endpoint,
		},
		Policy: node.NodePolicy{
			NetworkID:        string(nr.conf.NetworkID),
			BlockTime:        nr.conf.BlockTime,
			RateLimitRuleAPI: nr.conf.RateLimitRuleAPI.String(),
			OperationsLimit:  nr.conf.OpsLimit,
			TransactionLimit: nr.conf.TxsLimit,
		},
		Block: node.NodeBlockInfo{
			Height:    latest.Height,
			Hash:      latest.Hash,
			TotalTxs:  latest.TotalTxs,
			Confirmed: latest.Confirmed,
		},
		Governance: node.NodeGovernanceInfo{
			MinimumBalance: governance.MinimumBalance,
			VotingPeriod:   governance.VotingPeriod,
			ProposalCount:  count,
		},
	}

	return
}
