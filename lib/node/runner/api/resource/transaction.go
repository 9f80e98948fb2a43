package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
)

type Transaction struct {
	bt *block.BlockTransaction
}

func NewTransaction(bt *block.BlockTransaction) *Transaction {
	t := &Transaction{
		bt: bt,
	}
	return t
}

func (t Transaction) GetMap() hal.Entry {
	return hal.Entry{
		"hash":         t.bt.Hash,
		"block_height": t.bt.BlockHeight,
		"index":        t.bt.Index,
		"source":       t.bt.Source,
		"sequence_id":  t.bt.SequenceID,
		"created":      t.bt.Created,
		"operations":   t.bt.Operations,
		"events":       t.bt.Events,
	}
}

func (t Transaction) Resource() *hal.Resource {
	r := hal.NewResource(t, t.LinkSelf())
	r.AddLink("account", hal.NewLink(strings.Replace(URLAccounts, "{id}", t.bt.Source, -1)))
	r.AddLink("block", hal.NewLink(blockLink(t.bt.BlockHeight)))
	return r
}

func (t Transaction) LinkSelf() string {
	return strings.Replace(URLTransactionByHash, "{id}", t.bt.Hash, -1)
}

func (t Transaction) MarshalJSON() ([]byte, error) {
	r := t.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
