package governance

import (
	"boscoin.io/minidao/lib/common"
)

// ChainContext is what the ledger reads from the chain it runs on. It is
// asked again at every call, so the height and the balances are never
// cached by the ledger.
type ChainContext interface {
	CurrentHeight() uint64
	Caller() string
	BalanceOf(address string) (common.Amount, error)
}

// TestChainContext is the in-memory `ChainContext`; the address not in
// `Balances` has no balance.
type TestChainContext struct {
	Height   uint64
	Address  string
	Balances map[string]common.Amount
}

func NewTestChainContext(height uint64, caller string) *TestChainContext {
	return &TestChainContext{
		Height:   height,
		Address:  caller,
		Balances: map[string]common.Amount{},
	}
}

func (c *TestChainContext) CurrentHeight() uint64 {
	return c.Height
}

func (c *TestChainContext) Caller() string {
	return c.Address
}

func (c *TestChainContext) BalanceOf(address string) (common.Amount, error) {
	return c.Balances[address], nil
}

// As returns the copy of the context called by caller.
func (c *TestChainContext) As(caller string) *TestChainContext {
	return &TestChainContext{
		Height:   c.Height,
		Address:  caller,
		Balances: c.Balances,
	}
}

// Mine advances the height by n blocks.
func (c *TestChainContext) Mine(n uint64) {
	c.Height += n
}
