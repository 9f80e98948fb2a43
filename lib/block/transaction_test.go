package block

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
	"boscoin.io/minidao/lib/transaction"
)

func TestBlockTransactionSaveAndGet(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	conf := common.NewConfig([]byte("test-network"))
	tx := transaction.TestMakeCreateProposal(conf.NetworkID, keypair.Random(), 0)
	message, err := tx.Serialize()
	require.NoError(t, err)

	events := []json.RawMessage{json.RawMessage(`{"type":"proposal-created","id":1}`)}
	bt := NewBlockTransactionFromTransaction(2, 0, tx, message, events)
	require.Equal(t, []string{"create-proposal"}, bt.Operations)
	require.NoError(t, bt.Save(st))

	exists, err := ExistsBlockTransaction(st, tx.GetHash())
	require.NoError(t, err)
	require.True(t, exists)

	fetched, err := GetBlockTransaction(st, tx.GetHash())
	require.NoError(t, err)
	require.Equal(t, uint64(2), fetched.BlockHeight)
	require.Equal(t, tx.B.Source, fetched.Source)
	require.Equal(t, 1, len(fetched.Events))
	require.JSONEq(t, string(events[0]), string(fetched.Events[0]))

	decoded, err := fetched.Transaction()
	require.NoError(t, err)
	require.Equal(t, tx.GetHash(), decoded.GetHash())
	require.NoError(t, decoded.IsWellFormed(conf))

	err = bt.Save(st)
	require.Equal(t, errors.TransactionAlreadyExists.Code, errors.Code(err))
}
