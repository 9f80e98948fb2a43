package governance

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/storage"
)

// TestMakeLedger returns the ledger over a new memory storage.
func TestMakeLedger() (*Ledger, *storage.LevelDBBackend) {
	st := storage.NewTestStorage()

	return NewLedger(st), st
}

// TestMakeVoter returns a new address which holds balance in ctx.
func TestMakeVoter(ctx *TestChainContext, balance common.Amount) string {
	address := keypair.Random().Address()
	ctx.Balances[address] = balance

	return address
}
