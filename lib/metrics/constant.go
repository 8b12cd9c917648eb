package metrics

const (
	Namespace         = "herehere"
	RegistrySubsystem = "registry"
	PollSubsystem     = "poll"
	LedgerSubsystem   = "ledger"
	APISubsystem      = "api"
)

const (
	ChoiceAye = "aye"
	ChoiceNo  = "no"
)
