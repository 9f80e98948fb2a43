package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLNodeInfo          = APIPrefix + APIVersionV1 + "/"
	URLProposals         = APIPrefix + APIVersionV1 + "/proposals"
	URLProposal          = APIPrefix + APIVersionV1 + "/proposals/{id}"
	URLProposalVotes     = APIPrefix + APIVersionV1 + "/proposals/{id}/votes"
	URLProposalVoter     = APIPrefix + APIVersionV1 + "/proposals/{id}/voters/{address}"
	URLAccounts          = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLBlocks            = APIPrefix + APIVersionV1 + "/blocks/{height}"
	URLTransactionByHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
	URLSubscribe         = APIPrefix + APIVersionV1 + "/subscribe"
)
