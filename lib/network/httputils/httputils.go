package httputils

import (
	"net/http"

	"boscoin.io/herehere/lib/errors"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	if r.Header.Get("Accept") == "text/event-stream" {
		return true
	}
	return false
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code: http.StatusNotFound,

		errors.Unauthorized.Code:        http.StatusUnauthorized,
		errors.InvalidCurrency.Code:     http.StatusPaymentRequired,
		errors.InsufficientPayment.Code: http.StatusPaymentRequired,
		errors.VotingClosed.Code:        http.StatusConflict,
		errors.AlreadyVoted.Code:        http.StatusConflict,
		errors.NotEligible.Code:         http.StatusForbidden,

		errors.MaximumBalanceReached.Code:   http.StatusBadRequest,
		errors.AccountBalanceUnderZero.Code: http.StatusPaymentRequired,
		errors.InvalidAmount.Code:           http.StatusBadRequest,

		errors.ComponentNotFound.Code:        http.StatusNotFound,
		errors.ComponentTypeMismatch.Code:    http.StatusBadRequest,
		errors.AccountNotFound.Code:          http.StatusNotFound,
		errors.InvalidAddress.Code:           http.StatusBadRequest,
		errors.InvalidProof.Code:             http.StatusUnauthorized,
		errors.MetadataLocked.Code:           http.StatusConflict,
		errors.PollNotFound.Code:             http.StatusNotFound,
		errors.GenesisAlreadyExists.Code:     http.StatusConflict,
		errors.TransactionAlreadyExists.Code: http.StatusConflict,

		errors.TransactionEmptyOperations.Code:     http.StatusBadRequest,
		errors.TransactionExcessOperations.Code:    http.StatusBadRequest,
		errors.TransactionInvalidSource.Code:       http.StatusBadRequest,
		errors.TransactionInvalidHash.Code:         http.StatusBadRequest,
		errors.TransactionInvalidSignature.Code:    http.StatusUnauthorized,
		errors.UnknownOperationType.Code:           http.StatusBadRequest,
		errors.InvalidOperation.Code:               http.StatusBadRequest,
		errors.OperationAmountUnderflow.Code:       http.StatusBadRequest,
		errors.OperationStatementEmpty.Code:        http.StatusBadRequest,
		errors.TransactionDuplicatedOperation.Code: http.StatusBadRequest,

		errors.BadRequestParameter.Code:     http.StatusBadRequest,
		errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
	}
)

// StatusCode returns the http status of `err`; uncoded errors and the
// storage faults are internal errors.
func StatusCode(err error) int {
	if status, found := ErrorsToStatus[errors.Code(err)]; found {
		return status
	}
	return http.StatusInternalServerError
}
