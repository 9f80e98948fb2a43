package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
)

func proposalIDFromRequest(r *http.Request) (uint64, error) {
	return common.ParseUint64QueryString(mux.Vars(r)["id"])
}

func (api NetworkHandlerAPI) GetProposalsHandler(w http.ResponseWriter, r *http.Request) {
	p, err := NewPageQuery(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	ctx, err := api.ChainContext("")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	var firstCursor, cursor []byte
	var rs []resource.Resource

	iterFunc, closeFunc := api.ledger().GetProposals(p.ListOptions())
	for {
		proposal, hasNext, c := iterFunc()
		if !hasNext {
			break
		}
		cursor = append([]byte{}, c...)
		if len(firstCursor) == 0 {
			firstCursor = append(firstCursor, c...)
		}
		rs = append(rs, resource.NewProposal(proposal, ctx.CurrentHeight()))
	}
	closeFunc()

	httputils.MustWriteJSON(w, 200, p.ResourceList(rs, firstCursor, cursor))
}

func (api NetworkHandlerAPI) GetProposalHandler(w http.ResponseWriter, r *http.Request) {
	id, err := proposalIDFromRequest(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	proposal, err := api.cache.GetProposal(api.ledger(), id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	ctx, err := api.ChainContext("")
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewProposal(proposal, ctx.CurrentHeight()))
}

func (api NetworkHandlerAPI) GetProposalVotesHandler(w http.ResponseWriter, r *http.Request) {
	id, err := proposalIDFromRequest(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	counts, err := api.ledger().GetVoteCounts(id)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewVoteCounts(id, counts))
}

// GetProposalVoterHandler returns whether the address voted on the
// proposal, its choice and whether it is eligible to vote now.
func (api NetworkHandlerAPI) GetProposalVoterHandler(w http.ResponseWriter, r *http.Request) {
	id, err := proposalIDFromRequest(r)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	address := mux.Vars(r)["address"]
	if !keypair.IsAddress(address) {
		httputils.WriteJSONError(w, errors.BadPublicAddress.Clone().SetData("address", address))
		return
	}

	readFunc := func() (payload interface{}, err error) {
		ledger := api.ledger()
		if _, err = ledger.GetProposal(id); err != nil {
			return
		}

		var hasVoted, choice, canVote bool
		if hasVoted, err = ledger.HasUserVoted(id, address); err != nil {
			return
		}
		if choice, err = ledger.GetUserVote(id, address); err != nil {
			return
		}

		ctx, err := api.ChainContext(address)
		if err != nil {
			return nil, err
		}
		if canVote, err = ledger.CanVote(ctx, address); err != nil {
			return
		}

		return resource.NewVoter(id, address, hasVoted, choice, canVote), nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
