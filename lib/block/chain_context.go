package block

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/storage"
)

// ChainContext reads the balances from the block accounts of the storage;
// the height is given by the caller, usually the height of the block being
// built.
type ChainContext struct {
	st     *storage.LevelDBBackend
	height uint64
	caller string
}

func NewChainContext(st *storage.LevelDBBackend, height uint64, caller string) *ChainContext {
	return &ChainContext{st: st, height: height, caller: caller}
}

func (c *ChainContext) CurrentHeight() uint64 {
	return c.height
}

func (c *ChainContext) Caller() string {
	return c.caller
}

// BalanceOf returns 0 for the unknown account.
func (c *ChainContext) BalanceOf(address string) (common.Amount, error) {
	exists, err := ExistsBlockAccount(c.st, address)
	if err != nil || !exists {
		return 0, err
	}

	ba, err := GetBlockAccount(c.st, address)
	if err != nil {
		return 0, err
	}

	return ba.Balance, nil
}

// NextChainContext is the context at the height next to the latest block.
func NextChainContext(st *storage.LevelDBBackend, caller string) (*ChainContext, error) {
	latest, err := GetLatestBlock(st)
	if err != nil {
		return nil, err
	}

	return NewChainContext(st, latest.Height+1, caller), nil
}
