package metrics

const (
	Namespace            = "minidao"
	BlockSubsystem       = "block"
	GovernanceSubsystem  = "governance"
	TransactionSubsystem = "transaction"
	APISubsystem         = "api"
)

const (
	GovernanceOperation = "operation"
	GovernanceCode      = "code"
	GovernanceOutcome   = "outcome"
	GovernanceChoice    = "choice"

	TransactionStatus         = "status"
	TransactionStatusAccepted = "accepted"
	TransactionStatusRejected = "rejected"
)
