//
// Defines the genesis block, the special first block which funds the
// initial accounts
//
package block

import (
	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

// GenesisBlockConfirmedTime is the fixed confirmed time of genesis block;
// the same accounts make the same genesis block.
const GenesisBlockConfirmedTime string = "2018-04-17T5:07:31.000000000Z"

// MakeGenesisBlock saves the genesis accounts and the genesis block at
// `common.GenesisBlockHeight`.
func MakeGenesisBlock(st *storage.LevelDBBackend, accounts ...BlockAccount) (blk Block, err error) {
	var exists bool
	if exists, err = ExistsBlockByHeight(st, common.GenesisBlockHeight); exists || err != nil {
		if exists {
			err = errors.BlockAlreadyExists
		}

		return
	}

	var ts *storage.LevelDBBackend
	if ts, err = st.OpenTransaction(); err != nil {
		return
	}

	for _, account := range accounts {
		account.Balance.Invariant()
		a := account
		if err = a.Save(ts); err != nil {
			ts.Discard()
			return
		}
	}

	blk = NewBlock(common.GenesisBlockHeight, Block{}, nil, GenesisBlockConfirmedTime)
	if err = blk.Save(ts); err != nil {
		ts.Discard()
		return
	}

	if err = ts.Commit(); err != nil {
		return
	}

	log.Debug("genesis block created", "hash", blk.Hash, "accounts", len(accounts))

	return
}

// GetGenesis returns the genesis block
func GetGenesis(st *storage.LevelDBBackend) (Block, error) {
	return GetBlockByHeight(st, common.GenesisBlockHeight)
}
