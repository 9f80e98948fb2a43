package api

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/node"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
	"boscoin.io/minidao/lib/transaction/operation"
)

var networkID []byte = []byte("minidao-test-network")

type testAPI struct {
	server  *httptest.Server
	storage *storage.LevelDBBackend
	handler *NetworkHandlerAPI
	voter   *keypair.Full
}

func (ta *testAPI) Close() {
	ta.server.Close()
	ta.storage.Close()
}

// prepareAPIServer serves the api over the storage with genesis block; the
// genesis funds `voter` with one coin.
func prepareAPIServer() *testAPI {
	st := storage.NewTestStorage()

	voter := keypair.Random()
	if _, err := block.MakeGenesisBlock(st, *block.NewBlockAccount(voter.Address(), common.AmountPerCoin)); err != nil {
		panic(err)
	}

	apiHandler := NewNetworkHandlerAPI(st, nil, "")
	apiHandler.ChainContext = func(caller string) (governance.ChainContext, error) {
		return block.NextChainContext(st, caller)
	}
	apiHandler.SubmitTransaction = func(tx transaction.Transaction) (block.BlockTransaction, error) {
		return testSubmitTransaction(st, tx)
	}
	apiHandler.NodeInfo = func() (node.NodeInfo, error) {
		latest, err := block.GetLatestBlock(st)
		if err != nil {
			return node.NodeInfo{}, err
		}
		return node.NodeInfo{
			Block: node.NodeBlockInfo{Height: latest.Height, Hash: latest.Hash},
			Governance: node.NodeGovernanceInfo{
				MinimumBalance: governance.MinimumBalance,
				VotingPeriod:   governance.VotingPeriod,
			},
		}, nil
	}

	router := mux.NewRouter()
	router.HandleFunc(GetNodeInfoPattern, apiHandler.GetNodeInfoHandler).Methods("GET")
	router.HandleFunc(GetProposalsHandlerPattern, apiHandler.GetProposalsHandler).Methods("GET")
	router.HandleFunc(GetProposalHandlerPattern, apiHandler.GetProposalHandler).Methods("GET")
	router.HandleFunc(GetProposalVotesHandlerPattern, apiHandler.GetProposalVotesHandler).Methods("GET")
	router.HandleFunc(GetProposalVoterHandlerPattern, apiHandler.GetProposalVoterHandler).Methods("GET")
	router.HandleFunc(GetAccountHandlerPattern, apiHandler.GetAccountHandler).Methods("GET")
	router.HandleFunc(GetBlockHandlerPattern, apiHandler.GetBlockHandler).Methods("GET")
	router.HandleFunc(GetTransactionByHashHandlerPattern, apiHandler.GetTransactionByHashHandler).Methods("GET")
	router.HandleFunc(PostTransactionPattern, apiHandler.PostTransactionHandler).Methods("POST")
	router.HandleFunc(PostSubscribePattern, apiHandler.PostSubscribeHandler).Methods("POST")

	return &testAPI{
		server:  httptest.NewServer(router),
		storage: st,
		handler: apiHandler,
		voter:   voter,
	}
}

// testSubmitTransaction applies tx and triggers the events, without the
// sequence id check and the block closing of the node runner.
func testSubmitTransaction(st *storage.LevelDBBackend, tx transaction.Transaction) (bt block.BlockTransaction, err error) {
	if err = tx.IsWellFormed(common.NewConfig(networkID)); err != nil {
		return
	}

	var ctx *block.ChainContext
	if ctx, err = block.NextChainContext(st, tx.Source()); err != nil {
		return
	}

	var ts *storage.LevelDBBackend
	if ts, err = st.OpenTransaction(); err != nil {
		return
	}

	ledger := governance.NewLedger(ts)

	var raw []json.RawMessage
	var triggered []governance.Event
	for _, op := range tx.B.Operations {
		var events []governance.Event
		switch body := op.B.(type) {
		case operation.CreateProposal:
			_, events, err = ledger.CreateProposal(ctx, body.Title, body.Description)
		case operation.Vote:
			events, err = ledger.Vote(ctx, body.ProposalID, body.Choice)
		case operation.FinalizeProposal:
			events, err = ledger.FinalizeProposal(ctx, body.ProposalID)
		default:
			err = errors.UnknownOperationType
		}
		if err != nil {
			ts.Discard()
			return
		}
		for _, e := range events {
			b, _ := e.Serialize()
			raw = append(raw, b)
		}
		triggered = append(triggered, events...)
	}

	message, _ := tx.Serialize()
	bt = block.NewBlockTransactionFromTransaction(ctx.CurrentHeight(), 0, tx, message, raw)
	if err = bt.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	TriggerEvent(triggered)
	return
}

// closeBlocks closes n empty blocks.
func closeBlocks(st *storage.LevelDBBackend, n int) {
	for i := 0; i < n; i++ {
		latest, err := block.GetLatestBlock(st)
		if err != nil {
			panic(err)
		}
		blk := block.NewBlock(latest.Height+1, latest, nil, common.NowISO8601())
		if err := blk.Save(st); err != nil {
			panic(err)
		}
	}
}

func request(ts *httptest.Server, url string, streaming bool, body ...[]byte) (*http.Response, error) {
	method := "GET"
	var reader io.Reader
	if len(body) > 0 {
		method = "POST"
		reader = bytes.NewReader(body[0])
	}

	req, err := http.NewRequest(method, ts.URL+url, reader)
	if err != nil {
		return nil, err
	}
	if streaming {
		req.Header.Set("Accept", "text/event-stream")
	} else if len(body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}

	return ts.Client().Do(req)
}

func postTransaction(ts *httptest.Server, tx transaction.Transaction) (*http.Response, error) {
	b, err := tx.Serialize()
	if err != nil {
		return nil, err
	}

	return request(ts, PostTransactionPattern, false, b)
}

func readJSON(resp *http.Response) map[string]interface{} {
	defer resp.Body.Close()

	recv := map[string]interface{}{}
	if err := json.NewDecoder(resp.Body).Decode(&recv); err != nil {
		panic(err)
	}
	return recv
}
