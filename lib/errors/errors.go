package errors

// pre-defined `Errors`
var (
	// storage
	StorageRecordDoesNotExist   = NewError(100, "record does not exist in storage")
	StorageRecordAlreadyExists  = NewError(101, "record already exists in storage")
	StorageCoreError            = NewError(102, "storage error")
	StorageConfigInvalid        = NewError(103, "invalid storage configuration")
	StorageTransactionNotOpened = NewError(104, "storage transaction is not opened")

	// governance
	Unauthorized        = NewError(110, "caller does not satisfy the required authorization rule")
	InvalidCurrency     = NewError(111, "payment is not in the settlement currency")
	InsufficientPayment = NewError(112, "payment is below the required amount")
	VotingClosed        = NewError(113, "voting has ended")
	AlreadyVoted        = NewError(114, "identity has already voted")
	NotEligible         = NewError(115, "identity does not hold the eligibility asset")

	// amount
	MaximumBalanceReached   = NewError(120, "monetary amount would be greater than the total supply of coins")
	AccountBalanceUnderZero = NewError(121, "account balance will be under zero")
	InvalidAmount           = NewError(122, "invalid amount")
	BucketCurrencyMismatch  = NewError(123, "buckets hold different currencies")

	// ledger
	ComponentNotFound        = NewError(130, "component does not exist")
	UnknownBlueprint         = NewError(131, "blueprint is not registered")
	ComponentTypeMismatch    = NewError(132, "component is not of the expected blueprint")
	AccountNotFound          = NewError(133, "account does not exist")
	InvalidAddress           = NewError(134, "invalid address")
	InvalidProof             = NewError(135, "proof signature is not valid")
	MetadataLocked           = NewError(136, "metadata entry is locked")
	PollNotFound             = NewError(137, "poll does not exist in the directory")
	GenesisAlreadyExists     = NewError(138, "genesis already exists")
	TransactionAlreadyExists = NewError(139, "transaction was already applied")

	// transaction
	TransactionEmptyOperations     = NewError(140, "operations are empty")
	TransactionExcessOperations    = NewError(141, "too many operations")
	TransactionInvalidSource       = NewError(142, "invalid transaction source")
	TransactionInvalidHash         = NewError(143, "transaction hash does not match its body")
	TransactionInvalidSignature    = NewError(144, "transaction signature is not valid")
	UnknownOperationType           = NewError(145, "unknown operation type")
	InvalidOperation               = NewError(146, "invalid operation")
	OperationAmountUnderflow       = NewError(147, "operation amount is zero")
	OperationStatementEmpty        = NewError(148, "poll statement is empty")
	TransactionDuplicatedOperation = NewError(149, "duplicated operation in transaction")

	// http
	BadRequestParameter     = NewError(160, "bad request parameter")
	PageQueryLimitMaxExceed = NewError(161, "limit exceeds the maximum")
	HTTPCacheAdapterUnknown = NewError(162, "http cache adapter not found")
)
