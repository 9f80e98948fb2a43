package httputils

import (
	"net/http"

	"boscoin.io/minidao/lib/errors"
)

const (
	ContentTypeJSON        = "application/json"
	ContentTypeHAL         = "application/hal+json"
	ContentTypeProblem     = "application/problem+json"
	ContentTypeEventStream = "text/event-stream"
)

// IsEventStream checks request header accept is text/event-stream
func IsEventStream(r *http.Request) bool {
	return r.Header.Get("Accept") == ContentTypeEventStream
}

var (
	ErrorsToStatus = map[uint]int{
		errors.StorageRecordDoesNotExist.Code:  http.StatusNotFound,
		errors.StorageRecordAlreadyExists.Code: http.StatusConflict,
		errors.StorageCoreError.Code:           http.StatusInternalServerError,

		errors.TransactionEmptyOperations.Code:      http.StatusBadRequest,
		errors.TransactionHasOverMaxOperations.Code: http.StatusBadRequest,
		errors.TransactionInvalidSequenceID.Code:    http.StatusBadRequest,
		errors.TransactionAlreadyExists.Code:        http.StatusConflict,
		errors.BadPublicAddress.Code:                http.StatusBadRequest,
		errors.SignatureVerificationFailed.Code:     http.StatusBadRequest,
		errors.InvalidOperation.Code:                http.StatusBadRequest,
		errors.UnknownOperationType.Code:            http.StatusBadRequest,
		errors.TransactionPoolFull.Code:             http.StatusServiceUnavailable,

		errors.BadRequestParameter.Code:     http.StatusBadRequest,
		errors.PageQueryLimitMaxExceed.Code: http.StatusBadRequest,
		errors.ContentTypeNotJSON.Code:      http.StatusUnsupportedMediaType,
		errors.HTTPServerError.Code:         http.StatusInternalServerError,

		errors.BlockAccountDoesNotExists.Code: http.StatusNotFound,
		errors.BlockAccountAlreadyExists.Code: http.StatusConflict,
		errors.MaximumBalanceReached.Code:     http.StatusBadRequest,
		errors.AccountBalanceUnderZero.Code:   http.StatusBadRequest,
		errors.BlockNotFound.Code:             http.StatusNotFound,
		errors.BlockAlreadyExists.Code:        http.StatusConflict,

		errors.ProposalEmptyTitle.Code:       http.StatusBadRequest,
		errors.ProposalEmptyDescription.Code: http.StatusBadRequest,
		errors.ProposalNotFound.Code:         http.StatusNotFound,
		errors.VoterIneligible.Code:          http.StatusForbidden,
		errors.AlreadyVoted.Code:             http.StatusConflict,
		errors.VotingPeriodNotEnded.Code:     http.StatusTooEarly,
		errors.ProposalAlreadyFinalized.Code: http.StatusConflict,
	}
)

func StatusCode(err error) int {
	if e, ok := err.(*errors.Error); ok {
		if status, found := ErrorsToStatus[e.Code]; found {
			return status
		}
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
