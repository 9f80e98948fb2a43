package block

import (
	"encoding/json"
	"fmt"

	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

// BlockTransaction is the receipt of an applied `Transaction`; it keeps the
// raw message and the events made by its operations.
//
// models
//  * 'hash'
// 	- 'bt-hash-<BlockTransaction.Hash>': `BlockTransaction`

const BlockTransactionPrefixHash string = "bt-hash-"

type BlockTransaction struct {
	Hash        string            `json:"hash"`
	BlockHeight uint64            `json:"block_height"`
	Index       uint64            `json:"index"`
	SequenceID  uint64            `json:"sequence_id"`
	Signature   string            `json:"signature"`
	Source      string            `json:"source"`
	Operations  []string          `json:"operations"` /* []Operation.H.Type */
	Events      []json.RawMessage `json:"events"`
	Created     string            `json:"created"`
	Message     []byte            `json:"message"`
}

func NewBlockTransactionFromTransaction(blockHeight, index uint64, tx transaction.Transaction, message []byte, events []json.RawMessage) BlockTransaction {
	var types []string
	for _, op := range tx.B.Operations {
		types = append(types, string(op.H.Type))
	}

	return BlockTransaction{
		Hash:        tx.H.Hash,
		BlockHeight: blockHeight,
		Index:       index,
		SequenceID:  tx.B.SequenceID,
		Signature:   tx.H.Signature,
		Source:      tx.B.Source,
		Operations:  types,
		Events:      events,
		Created:     tx.H.Created,
		Message:     message,
	}
}

func GetBlockTransactionKey(hash string) string {
	return fmt.Sprintf("%s%s", BlockTransactionPrefixHash, hash)
}

func (bt BlockTransaction) Save(st *storage.LevelDBBackend) (err error) {
	if err = st.New(GetBlockTransactionKey(bt.Hash), bt); err != nil {
		if errors.Code(err) == errors.StorageRecordAlreadyExists.Code {
			err = errors.TransactionAlreadyExists.Clone().SetData("hash", bt.Hash)
		}
	}

	return
}

// Transaction decodes the original transaction message.
func (bt BlockTransaction) Transaction() (tx transaction.Transaction, err error) {
	err = json.Unmarshal(bt.Message, &tx)
	return
}

func ExistsBlockTransaction(st *storage.LevelDBBackend, hash string) (bool, error) {
	return st.Has(GetBlockTransactionKey(hash))
}

func GetBlockTransaction(st *storage.LevelDBBackend, hash string) (bt BlockTransaction, err error) {
	err = st.Get(GetBlockTransactionKey(hash), &bt)
	return
}
