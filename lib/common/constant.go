package common

const (
	// GenesisBlockHeight is the height of the first block
	GenesisBlockHeight uint64 = 1

	// MaxOperationsInTransaction limits the number of operations in one
	// transaction.
	MaxOperationsInTransaction int = 100

	// TransactionVersionV1 is the current version of transaction
	TransactionVersionV1 = "1"
)
