package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/stretchr/testify/require"
)

func TestErrorsClone(t *testing.T) {
	e := NewError(999, "showme")
	e0 := e.Clone()
	require.NotEqual(t, fmt.Sprintf("%p", e), fmt.Sprintf("%p", e0))

	{
		e.Code = 998
		require.NotEqual(t, e.Code, e0.Code)
	}

	{
		e0.SetData("showme", "killme")
		require.NotEqual(t, e.Data, e0.Data)
	}
}

func TestErrorsRLP(t *testing.T) {
	{
		_, err := rlp.EncodeToBytes(ProposalNotFound)
		require.NoError(t, err)
	}

	{ // with `SetData()`, the rlp encoded value must be different
		encoded, err := rlp.EncodeToBytes(ProposalNotFound)
		require.NoError(t, err)

		e := ProposalNotFound.Clone()
		e.SetData("proposal", "1")
		encoded0, err := rlp.EncodeToBytes(e)
		require.NoError(t, err)
		require.NotEqual(t, encoded, encoded0)
	}
}

func TestErrorsIs(t *testing.T) {
	cloned := AlreadyVoted.Clone().SetData("voter", "GABC")

	require.True(t, stderrors.Is(cloned, AlreadyVoted))
	require.False(t, stderrors.Is(cloned, VoterIneligible))
	require.False(t, stderrors.Is(stderrors.New("plain"), AlreadyVoted))

	wrapped := fmt.Errorf("apply: %w", cloned)
	require.True(t, stderrors.Is(wrapped, AlreadyVoted))
}

func TestErrorsCode(t *testing.T) {
	require.Equal(t, uint(205), Code(VotingPeriodNotEnded))
	require.Equal(t, uint(0), Code(stderrors.New("plain")))

	require.True(t, IsInvalidInput(ProposalEmptyTitle))
	require.True(t, IsInvalidInput(ProposalEmptyDescription.Clone()))
	require.False(t, IsInvalidInput(ProposalNotFound))
}

func TestErrorsUniqueCode(t *testing.T) {
	all := []*Error{
		StorageRecordDoesNotExist, StorageRecordAlreadyExists, StorageCoreError,
		TransactionEmptyOperations, TransactionHasOverMaxOperations, TransactionInvalidSequenceID,
		TransactionAlreadyExists, BadPublicAddress, SignatureVerificationFailed, InvalidOperation,
		UnknownOperationType, BadRequestParameter, PageQueryLimitMaxExceed, ContentTypeNotJSON,
		HTTPServerError, BlockAccountDoesNotExists, BlockAccountAlreadyExists, MaximumBalanceReached,
		AccountBalanceUnderZero, BlockNotFound, BlockAlreadyExists, ProposalEmptyTitle,
		ProposalEmptyDescription, ProposalNotFound, VoterIneligible, AlreadyVoted,
		VotingPeriodNotEnded, ProposalAlreadyFinalized,
	}

	codes := map[uint]string{}
	for _, e := range all {
		_, found := codes[e.Code]
		require.False(t, found, "duplicated code: %d", e.Code)
		codes[e.Code] = e.Message
	}
}
