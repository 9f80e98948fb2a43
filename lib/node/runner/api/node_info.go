package api

import (
	"net/http"

	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
)

func (api NetworkHandlerAPI) GetNodeInfoHandler(w http.ResponseWriter, r *http.Request) {
	info, err := api.NodeInfo()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewNodeInfo(info))
}
