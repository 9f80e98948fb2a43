package errors

var (
	StorageRecordDoesNotExist  = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(101, "record already exists in storage")
	StorageCoreError           = NewError(102, "storage error")

	TransactionEmptyOperations      = NewError(110, "transaction has no operations")
	TransactionHasOverMaxOperations = NewError(111, "transaction has too many operations")
	TransactionInvalidSequenceID    = NewError(112, "invalid sequence id")
	TransactionAlreadyExists        = NewError(113, "transaction already exists")
	BadPublicAddress                = NewError(114, "failed to parse public address")
	SignatureVerificationFailed     = NewError(115, "signature verification failed")
	InvalidOperation                = NewError(116, "invalid operation")
	UnknownOperationType            = NewError(117, "unknown operation type")
	TransactionPoolFull             = NewError(118, "too many transactions in the block being built")

	BadRequestParameter     = NewError(120, "bad request parameter")
	PageQueryLimitMaxExceed = NewError(121, "limit exceeds the maximum")
	ContentTypeNotJSON      = NewError(122, "`Content-Type` must be 'application/json'")
	HTTPServerError         = NewError(123, "internal server error")

	BlockAccountDoesNotExists = NewError(130, "account does not exist in block")
	BlockAccountAlreadyExists = NewError(131, "account already exists in block")
	MaximumBalanceReached     = NewError(132, "balance exceeds the maximum")
	AccountBalanceUnderZero   = NewError(133, "balance goes under zero")
	BlockNotFound             = NewError(134, "block not found")
	BlockAlreadyExists        = NewError(135, "block already exists")

	ProposalEmptyTitle       = NewError(200, "title cannot be empty")
	ProposalEmptyDescription = NewError(201, "description cannot be empty")
	ProposalNotFound         = NewError(202, "proposal does not exist")
	VoterIneligible          = NewError(203, "insufficient balance to vote")
	AlreadyVoted             = NewError(204, "already voted on this proposal")
	VotingPeriodNotEnded     = NewError(205, "voting period not yet ended")
	ProposalAlreadyFinalized = NewError(206, "proposal already finalized")
)

// IsInvalidInput reports whether err rejects the content of a new proposal.
func IsInvalidInput(err error) bool {
	switch Code(err) {
	case ProposalEmptyTitle.Code, ProposalEmptyDescription.Code:
		return true
	}

	return false
}
