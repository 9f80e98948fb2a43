package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetAccountHandler(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	address := vars["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := block.ExistsBlockAccount(api.storage, address)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.BlockAccountDoesNotExists.Clone().SetData("address", address)
		}
		ba, err := block.GetBlockAccount(api.storage, address)
		if err != nil {
			return nil, err
		}

		ctx, err := api.ChainContext(address)
		if err != nil {
			return nil, err
		}
		canVote, err := api.ledger().CanVote(ctx, address)
		if err != nil {
			return nil, err
		}

		payload = resource.NewAccount(ba, canVote)
		return payload, nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}
