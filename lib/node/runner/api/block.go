package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetBlockHandler(w http.ResponseWriter, r *http.Request) {
	height, err := common.ParseUint64QueryString(mux.Vars(r)["height"])
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	blk, err := block.GetBlockByHeight(api.storage, height)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewBlock(&blk))
}
