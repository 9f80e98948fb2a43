package network

const (
	UrlPathPrefixAPI     = "/api"
	UrlPathPrefixMetric  = "/metrics"
	UrlPathPrefixJSONRPC = "/jsonrpc"
)
