package metrics

var (
	Block       = NopBlockMetrics()
	Governance  = NopGovernanceMetrics()
	Transaction = NopTransactionMetrics()
	API         = NopAPIMetrics()
)
