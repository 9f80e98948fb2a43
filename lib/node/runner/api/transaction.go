package api

import (
	"encoding/json"
	"io"
	"io/ioutil"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/network/httputils"
	"boscoin.io/minidao/lib/node/runner/api/resource"
	"boscoin.io/minidao/lib/transaction"
)

// MaxTransactionBodySize limits the body of the posted transaction.
const MaxTransactionBodySize int64 = 1 << 20

func (api NetworkHandlerAPI) GetTransactionByHashHandler(w http.ResponseWriter, r *http.Request) {
	key := mux.Vars(r)["id"]

	readFunc := func() (payload interface{}, err error) {
		found, err := block.ExistsBlockTransaction(api.storage, key)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, errors.StorageRecordDoesNotExist.Clone().SetData("hash", key)
		}

		bt, err := block.GetBlockTransaction(api.storage, key)
		if err != nil {
			return nil, err
		}

		return resource.NewTransaction(&bt), nil
	}

	payload, err := readFunc()
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, payload)
}

// PostTransactionHandler applies the signed transaction and returns its
// receipt with the events made by the operations.
func (api NetworkHandlerAPI) PostTransactionHandler(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	if !strings.HasPrefix(r.Header.Get("Content-Type"), httputils.ContentTypeJSON) {
		httputils.WriteJSONError(w, errors.ContentTypeNotJSON)
		return
	}

	body, err := ioutil.ReadAll(io.LimitReader(r.Body, MaxTransactionBodySize))
	if err != nil {
		httputils.WriteJSONError(w, errors.BadRequestParameter.Clone().SetData("error", err.Error()))
		return
	}

	var tx transaction.Transaction
	if err := json.Unmarshal(body, &tx); err != nil {
		if _, ok := err.(*errors.Error); !ok {
			err = errors.BadRequestParameter.Clone().SetData("error", err.Error())
		}
		httputils.WriteJSONError(w, err)
		return
	}

	bt, err := api.SubmitTransaction(tx)
	if err != nil {
		httputils.WriteJSONError(w, err)
		return
	}

	httputils.MustWriteJSON(w, 200, resource.NewTransaction(&bt))
}
