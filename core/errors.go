package core

import (
	"fmt"
	"strconv"
)

// ErrorCode int
type ErrorCode int

const (
	// ErrUnknown unkown
	ErrUnknown ErrorCode = 100000
	// ErrOperationForbidden operation forbidden
	ErrOperationForbidden ErrorCode = 100001
	// ErrNotInitialized no active session
	ErrNotInitialized ErrorCode = 100002
	// ErrInvalidArgument invalid argument
	ErrInvalidArgument ErrorCode = 100003

	// ErrVaultNotFound no vault
	ErrVaultNotFound ErrorCode = 100100
	// ErrProposalNotFound no proposal
	ErrProposalNotFound ErrorCode = 100101
	// ErrProposalNotReady approvals below threshold
	ErrProposalNotReady ErrorCode = 100102
	// ErrProposalExecuted proposal already executed
	ErrProposalExecuted ErrorCode = 100103
	// ErrNotSigner caller is not a signer of the vault
	ErrNotSigner ErrorCode = 100104
)

func (e ErrorCode) String() string {
	return strconv.Itoa(int(e))
}

func (e ErrorCode) Error() string {
	switch e {
	case ErrOperationForbidden:
		return "operation forbidden"
	case ErrNotInitialized:
		return "session not initialized"
	case ErrInvalidArgument:
		return "invalid argument"
	case ErrVaultNotFound:
		return "vault not found"
	case ErrProposalNotFound:
		return "proposal not found"
	case ErrProposalNotReady:
		return "proposal not ready for execution"
	case ErrProposalExecuted:
		return "proposal already executed"
	case ErrNotSigner:
		return "not a signer of the vault"
	}

	return e.String()
}

// ValidationError rejects a request before it reaches the ledger
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidationError new validation error
func NewValidationError(field, reason string) *ValidationError {
	return &ValidationError{
		Field:  field,
		Reason: reason,
	}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Is matches ErrInvalidArgument
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidArgument
}
