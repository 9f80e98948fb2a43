package resource

import (
	"strings"

	"github.com/nvellon/hal"

	"boscoin.io/minidao/lib/block"
	"boscoin.io/minidao/lib/common"
)

type Account struct {
	ba      *block.BlockAccount
	canVote bool
}

func NewAccount(ba *block.BlockAccount, canVote bool) *Account {
	a := &Account{
		ba:      ba,
		canVote: canVote,
	}
	return a
}

func (a Account) GetMap() hal.Entry {
	return hal.Entry{
		"address":     a.ba.Address,
		"sequence_id": a.ba.SequenceID,
		"balance":     a.ba.Balance,
		"can_vote":    a.canVote,
	}
}

func (a Account) Resource() *hal.Resource {
	return hal.NewResource(a, a.LinkSelf())
}

func (a Account) LinkSelf() string {
	return strings.Replace(URLAccounts, "{id}", a.ba.Address, -1)
}

func (a Account) MarshalJSON() ([]byte, error) {
	r := a.Resource()
	return common.JSONMarshalWithoutEscapeHTML(r.GetMap())
}
