package block

import (
	"encoding/json"
	"fmt"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

const (
	maxBlockHeightStringLength int = 20

	BlockPrefixHash   string = "bk-hash-"
	BlockPrefixHeight string = "bk-height-"
)

// Block closes the transactions applied at `Height`. The ledger takes the
// height of the block being built as the current height.
type Block struct {
	Height       uint64   `json:"height"`
	Hash         string   `json:"hash"`
	PrevHash     string   `json:"prev_hash"`
	Transactions []string `json:"transactions"` /* []Transaction.GetHash() */
	TotalTxs     uint64   `json:"total_txs"`
	Confirmed    string   `json:"confirmed"`
}

type blockHashBody struct {
	Height       uint64
	PrevHash     string
	Transactions []string
	TotalTxs     uint64
	Confirmed    string
}

func NewBlock(height uint64, prev Block, transactions []string, confirmed string) Block {
	if transactions == nil {
		transactions = []string{}
	}

	b := Block{
		Height:       height,
		PrevHash:     prev.Hash,
		Transactions: transactions,
		TotalTxs:     prev.TotalTxs + uint64(len(transactions)),
		Confirmed:    confirmed,
	}
	b.Hash = common.MustMakeObjectHashString(blockHashBody{
		Height:       b.Height,
		PrevHash:     b.PrevHash,
		Transactions: b.Transactions,
		TotalTxs:     b.TotalTxs,
		Confirmed:    b.Confirmed,
	})

	return b
}

func (bck Block) Serialize() (encoded []byte, err error) {
	encoded, err = json.Marshal(bck)
	return
}

func (bck Block) String() string {
	encoded, _ := json.MarshalIndent(bck, "", "  ")
	return string(encoded)
}

func GetBlockKey(hash string) string {
	return fmt.Sprintf("%s%s", BlockPrefixHash, hash)
}

func GetBlockKeyPrefixHeight(height uint64) string {
	return fmt.Sprintf("%s%0*d", BlockPrefixHeight, maxBlockHeightStringLength, height)
}

func (b Block) Save(st *storage.LevelDBBackend) (err error) {
	var exists bool
	if exists, err = ExistsBlockByHeight(st, b.Height); err != nil {
		return
	} else if exists {
		return errors.BlockAlreadyExists.Clone().SetData("height", b.Height)
	}

	if err = st.New(GetBlockKey(b.Hash), b); err != nil {
		return
	}

	return st.New(GetBlockKeyPrefixHeight(b.Height), b.Hash)
}

func GetBlock(st *storage.LevelDBBackend, hash string) (bt Block, err error) {
	if err = st.Get(GetBlockKey(hash), &bt); err != nil {
		if errors.Code(err) == errors.StorageRecordDoesNotExist.Code {
			err = errors.BlockNotFound.Clone().SetData("hash", hash)
		}
	}
	return
}

func ExistsBlockByHeight(st *storage.LevelDBBackend, height uint64) (exists bool, err error) {
	exists, err = st.Has(GetBlockKeyPrefixHeight(height))
	return
}

func GetBlockByHeight(st *storage.LevelDBBackend, height uint64) (bt Block, err error) {
	var hash string
	if err = st.Get(GetBlockKeyPrefixHeight(height), &hash); err != nil {
		if errors.Code(err) == errors.StorageRecordDoesNotExist.Code {
			err = errors.BlockNotFound.Clone().SetData("height", height)
		}
		return
	}

	return GetBlock(st, hash)
}

// GetLatestBlock returns the block of the highest height; it returns
// `errors.BlockNotFound` before genesis.
func GetLatestBlock(st *storage.LevelDBBackend) (b Block, err error) {
	iterFunc, closeFunc := st.GetIterator(BlockPrefixHeight, storage.NewDefaultListOptions(true, nil, 1))
	defer closeFunc()

	item, hasNext := iterFunc()
	if !hasNext {
		err = errors.BlockNotFound
		return
	}

	var hash string
	if err = json.Unmarshal(item.Value, &hash); err != nil {
		return
	}

	return GetBlock(st, hash)
}
