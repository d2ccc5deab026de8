package codes

import (
	"errors"
	"net/http"
	"strconv"

	"cosign/core"

	"github.com/fox-one/pkg/store/db"
	"github.com/twitchtv/twirp"
)

const (
	// CustomCodeKey code key
	CustomCodeKey = "custom_code"
	// HintKey hint key
	HintKey = "hint"

	// InvalidArguments invalid arguments
	InvalidArguments = int(core.ErrInvalidArgument)
)

// With with specified error
func With(err error, code int) twirp.Error {
	twerr, ok := err.(twirp.Error)
	if !ok {
		twerr = twirp.InternalErrorWith(err)
	}

	return twerr.WithMeta(CustomCodeKey, strconv.Itoa(code))
}

// Get get error code
func Get(code twirp.ErrorCode) int {
	switch code {
	case twirp.InvalidArgument:
		return InvalidArguments
	default:
		return twirp.ServerHTTPStatusFromErrorCode(code)
	}
}

// Custom custom code of twerr, falls back to Get
func Custom(twerr twirp.Error) int {
	if v, err := strconv.Atoi(twerr.Meta(CustomCodeKey)); err == nil {
		return v
	}

	return Get(twerr.Code())
}

// From convert domain errors to twirp errors
func From(err error) twirp.Error {
	var twerr twirp.Error
	if errors.As(err, &twerr) {
		return twerr
	}

	var verr *core.ValidationError
	if errors.As(err, &verr) {
		return With(twirp.InvalidArgumentError(verr.Field, verr.Reason), InvalidArguments)
	}

	var lerr *core.LedgerError
	if errors.As(err, &lerr) {
		twerr = twirp.NewError(statusCode(lerr.Code), lerr.Message)
		if lerr.Details != "" {
			twerr = twerr.WithMeta(HintKey, lerr.Details)
		}

		return twerr.WithMeta(CustomCodeKey, strconv.Itoa(lerr.Code))
	}

	if errors.Is(err, db.ErrOptimisticLock) {
		return With(twirp.NewError(twirp.Aborted, "vault changed, retry"), http.StatusConflict)
	}

	var code core.ErrorCode
	if errors.As(err, &code) {
		return With(twirp.NewError(errorCode(code), code.Error()), int(code))
	}

	return twirp.InternalErrorWith(err)
}

func errorCode(code core.ErrorCode) twirp.ErrorCode {
	switch code {
	case core.ErrNotInitialized:
		return twirp.Unauthenticated
	case core.ErrOperationForbidden, core.ErrNotSigner:
		return twirp.PermissionDenied
	case core.ErrInvalidArgument:
		return twirp.InvalidArgument
	case core.ErrVaultNotFound, core.ErrProposalNotFound:
		return twirp.NotFound
	case core.ErrProposalNotReady, core.ErrProposalExecuted:
		return twirp.FailedPrecondition
	}

	return twirp.Internal
}

// statusCode ledger codes may be http status codes or custom ones
func statusCode(code int) twirp.ErrorCode {
	switch code {
	case http.StatusBadRequest:
		return twirp.InvalidArgument
	case http.StatusUnauthorized:
		return twirp.Unauthenticated
	case http.StatusForbidden:
		return twirp.PermissionDenied
	case http.StatusNotFound:
		return twirp.NotFound
	case http.StatusConflict:
		return twirp.AlreadyExists
	case http.StatusServiceUnavailable, http.StatusBadGateway, http.StatusGatewayTimeout:
		return twirp.Unavailable
	}

	return twirp.Unknown
}
