package metrics

func InitPrometheusMetrics() {
	Version = PromVersion()
	Block = PromBlockMetrics()
	Governance = PromGovernanceMetrics()
	Transaction = PromTransactionMetrics()
	API = PromAPIMetrics()
}
