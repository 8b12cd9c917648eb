package resource

const (
	APIVersionV1 = "/v1"
	APIPrefix    = "/api"

	URLAccounts        = APIPrefix + APIVersionV1 + "/accounts/{id}"
	URLRegistries      = APIPrefix + APIVersionV1 + "/registries/{id}"
	URLRegistryPolls   = APIPrefix + APIVersionV1 + "/registries/{id}/polls"
	URLRegistryPoll    = APIPrefix + APIVersionV1 + "/registries/{id}/polls/{pollID}"
	URLPolls           = APIPrefix + APIVersionV1 + "/polls/{id}"
	URLPollBallots     = APIPrefix + APIVersionV1 + "/polls/{id}/ballots"
	URLPollBallot      = APIPrefix + APIVersionV1 + "/polls/{id}/ballots/{voter}"
	URLTransactions    = APIPrefix + APIVersionV1 + "/transactions"
	URLTransactionHash = APIPrefix + APIVersionV1 + "/transactions/{id}"
)
