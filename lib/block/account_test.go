package block

import (
	"testing"

	"github.com/stretchr/testify/require"

	"boscoin.io/minidao/lib/common"
	"boscoin.io/minidao/lib/errors"
	"boscoin.io/minidao/lib/storage"
)

func TestSaveNewBlockAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	b := TestMakeBlockAccount(common.Amount(common.AmountPerCoin))
	require.NoError(t, b.Save(st))

	exists, err := ExistsBlockAccount(st, b.Address)
	require.NoError(t, err)
	require.True(t, exists)

	fetched, err := GetBlockAccount(st, b.Address)
	require.NoError(t, err)
	require.Equal(t, b.Address, fetched.Address)
	require.Equal(t, b.Balance, fetched.GetBalance())
	require.Equal(t, uint64(0), fetched.SequenceID)
}

func TestSaveExistingBlockAccount(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	b := TestMakeBlockAccount(common.Amount(100))
	require.NoError(t, b.Save(st))

	require.NoError(t, b.Deposit(common.Amount(50)))
	b.IncreaseSequenceID()
	require.NoError(t, b.Save(st))

	fetched, err := GetBlockAccount(st, b.Address)
	require.NoError(t, err)
	require.Equal(t, common.Amount(150), fetched.Balance)
	require.Equal(t, uint64(1), fetched.SequenceID)

	// the created index keeps one entry per account
	iterFunc, closeFunc := GetBlockAccountAddressesByCreated(st, storage.NewDefaultListOptions(false, nil, 0))
	defer closeFunc()

	var addresses []string
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}
		addresses = append(addresses, address)
	}
	require.Equal(t, []string{b.Address}, addresses)
}

func TestBlockAccountWithdraw(t *testing.T) {
	b := TestMakeBlockAccount(common.Amount(100))

	require.NoError(t, b.Withdraw(common.Amount(40)))
	require.Equal(t, common.Amount(60), b.Balance)

	err := b.Withdraw(common.Amount(61))
	require.Equal(t, errors.AccountBalanceUnderZero.Code, errors.Code(err))
	require.Equal(t, common.Amount(60), b.Balance)
}

func TestGetBlockAccountNotFound(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	_, err := GetBlockAccount(st, "unknown")
	require.Equal(t, errors.StorageRecordDoesNotExist.Code, errors.Code(err))
}

func TestGetBlockAccountAddressesByCreatedOrder(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	var created []string
	for i := 0; i < 5; i++ {
		b := TestMakeBlockAccount(common.Amount(i + 1))
		require.NoError(t, b.Save(st))
		created = append(created, b.Address)
	}

	iterFunc, closeFunc := GetBlockAccountAddressesByCreated(st, storage.NewDefaultListOptions(true, nil, 0))
	defer closeFunc()

	var addresses []string
	for {
		address, hasNext := iterFunc()
		if !hasNext {
			break
		}
		addresses = append(addresses, address)
	}

	require.Equal(t, len(created), len(addresses))
	for i, address := range addresses {
		require.Equal(t, created[len(created)-1-i], address)
	}
}

func TestChainContextBalanceOf(t *testing.T) {
	st := storage.NewTestStorage()
	defer st.Close()

	ba := TestMakeBlockAccount(common.AmountPerCoin)
	_, err := MakeGenesisBlock(st, *ba)
	require.NoError(t, err)

	ctx, err := NextChainContext(st, ba.Address)
	require.NoError(t, err)
	require.Equal(t, common.GenesisBlockHeight+1, ctx.CurrentHeight())
	require.Equal(t, ba.Address, ctx.Caller())

	balance, err := ctx.BalanceOf(ba.Address)
	require.NoError(t, err)
	require.Equal(t, common.AmountPerCoin, balance)

	balance, err = ctx.BalanceOf(TestMakeBlockAccount(0).Address)
	require.NoError(t, err)
	require.Equal(t, common.Amount(0), balance)
}
