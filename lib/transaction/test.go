package transaction

import (
	"boscoin.io/minidao/lib/common/keypair"
	"boscoin.io/minidao/lib/transaction/operation"
)

// TestMakeTransaction makes a signed transaction with the given operations
// sent by kp.
func TestMakeTransaction(networkID []byte, kp *keypair.Full, sequenceID uint64, ops ...operation.Operation) Transaction {
	tx, err := NewTransaction(kp.Address(), sequenceID, ops...)
	if err != nil {
		panic(err)
	}
	tx.Sign(kp, networkID)

	return tx
}

func TestMakeCreateProposal(networkID []byte, kp *keypair.Full, sequenceID uint64) Transaction {
	op := operation.MustNewOperation(operation.NewCreateProposal("Increase block size", "Raise the limit to 2MB"))

	return TestMakeTransaction(networkID, kp, sequenceID, op)
}
