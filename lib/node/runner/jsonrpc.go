package runner

import (
	"net/http"

	"github.com/gorilla/rpc"
	jsonrpc "github.com/gorilla/rpc/json"

	"boscoin.io/minidao/lib/governance"
	"boscoin.io/minidao/lib/storage"
)

const MaxLimitListOptions uint64 = 10000

type ProposalArgs struct {
	ProposalID uint64
}

type VoterArgs struct {
	ProposalID uint64
	Address    string
}

type AddressArgs struct {
	Address string
}

type NoArgs struct{}

type BoolResult bool
type Uint64Result uint64

// jsonrpcGovernanceApp answers the read calls of the ledger at the height
// of the block being built.
type jsonrpcGovernanceApp struct {
	nr *NodeRunner
}

func (j *jsonrpcGovernanceApp) ledger() *governance.Ledger {
	return governance.NewLedger(j.nr.storage)
}

func (j *jsonrpcGovernanceApp) CanVote(r *http.Request, args *AddressArgs, result *BoolResult) error {
	ctx, err := j.nr.ChainContext(args.Address)
	if err != nil {
		return err
	}

	ok, err := j.ledger().CanVote(ctx, args.Address)
	if err != nil {
		return err
	}

	*result = BoolResult(ok)
	return nil
}

func (j *jsonrpcGovernanceApp) CanFinalizeProposal(r *http.Request, args *ProposalArgs, result *BoolResult) error {
	ctx, err := j.nr.ChainContext("")
	if err != nil {
		return err
	}

	ok, err := j.ledger().CanFinalizeProposal(ctx, args.ProposalID)
	if err != nil {
		return err
	}

	*result = BoolResult(ok)
	return nil
}

func (j *jsonrpcGovernanceApp) GetRemainingBlocks(r *http.Request, args *ProposalArgs, result *Uint64Result) error {
	ctx, err := j.nr.ChainContext("")
	if err != nil {
		return err
	}

	remaining, err := j.ledger().GetRemainingBlocks(ctx, args.ProposalID)
	if err != nil {
		return err
	}

	*result = Uint64Result(remaining)
	return nil
}

func (j *jsonrpcGovernanceApp) HasUserVoted(r *http.Request, args *VoterArgs, result *BoolResult) error {
	voted, err := j.ledger().HasUserVoted(args.ProposalID, args.Address)
	if err != nil {
		return err
	}

	*result = BoolResult(voted)
	return nil
}

func (j *jsonrpcGovernanceApp) GetUserVote(r *http.Request, args *VoterArgs, result *BoolResult) error {
	choice, err := j.ledger().GetUserVote(args.ProposalID, args.Address)
	if err != nil {
		return err
	}

	*result = BoolResult(choice)
	return nil
}

func (j *jsonrpcGovernanceApp) GetVoteCounts(r *http.Request, args *ProposalArgs, result *governance.VoteCounts) (err error) {
	*result, err = j.ledger().GetVoteCounts(args.ProposalID)
	return
}

func (j *jsonrpcGovernanceApp) GetProposal(r *http.Request, args *ProposalArgs, result *governance.Proposal) (err error) {
	*result, err = j.ledger().GetProposal(args.ProposalID)
	return
}

func (j *jsonrpcGovernanceApp) ProposalCount(r *http.Request, args *NoArgs, result *Uint64Result) error {
	count, err := j.ledger().ProposalCount()
	if err != nil {
		return err
	}

	*result = Uint64Result(count)
	return nil
}

type DBHasArgs string
type DBHasResult bool

type DBGetArgs string
type DBGetResult storage.IterItem

type GetIteratorOptions struct {
	Reverse bool
	Cursor  []byte
	Limit   uint64
}

type DBGetIteratorArgs struct {
	Prefix  string
	Options GetIteratorOptions
}

type DBGetIteratorResult struct {
	Limit uint64
	Items []storage.IterItem
}

// jsonrpcDBApp reads the raw records of the storage.
type jsonrpcDBApp struct {
	st *storage.LevelDBBackend
}

func (j *jsonrpcDBApp) Has(r *http.Request, args *DBHasArgs, result *DBHasResult) error {
	o, err := j.st.Has(string(*args))
	if err != nil {
		return err
	}

	*result = DBHasResult(o)
	return nil
}

func (j *jsonrpcDBApp) Get(r *http.Request, args *DBGetArgs, result *DBGetResult) error {
	o, err := j.st.GetRaw(string(*args))
	if err != nil {
		return err
	}

	*result = DBGetResult{Key: []byte(*args), Value: o}
	return nil
}

func (j *jsonrpcDBApp) GetIterator(r *http.Request, args *DBGetIteratorArgs, result *DBGetIteratorResult) error {
	limit := args.Options.Limit
	if limit < 1 || limit > MaxLimitListOptions {
		limit = MaxLimitListOptions
	}

	options := storage.NewDefaultListOptions(
		args.Options.Reverse,
		args.Options.Cursor,
		limit,
	)

	it, closeFunc := j.st.GetIterator(args.Prefix, options)
	defer closeFunc()

	collected := []storage.IterItem{}
	for {
		v, hasNext := it()
		if !hasNext {
			break
		}

		collected = append(collected, v)
	}

	result.Items = collected
	result.Limit = limit

	return nil
}

type jsonrpcInternalServer struct {
	*rpc.Server
}

func (s *jsonrpcInternalServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method == "OPTIONS" {
		return
	}

	s.Server.ServeHTTP(w, r)
}

// JSONRPCHandler serves the `Governance` and `DB` services in JSON-RPC 1.0.
func (nr *NodeRunner) JSONRPCHandler() http.Handler {
	s := &jsonrpcInternalServer{Server: rpc.NewServer()}
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json")
	s.RegisterCodec(jsonrpc.NewCodec(), "application/json;charset=UTF-8")

	s.RegisterService(&jsonrpcGovernanceApp{nr: nr}, "Governance")
	s.RegisterService(&jsonrpcDBApp{st: nr.storage}, "DB")

	return s
}
