package domain

import (
	"errors"
	"fmt"
)

// ErrorKind discriminates failure classes so callers can branch on them
// instead of matching message text.
type ErrorKind string

const (
	// ErrInvalidInput is a caller error; never retried
	ErrInvalidInput ErrorKind = "invalid_input"
	// ErrIdentityUnavailable means the identity provider could not supply a key
	ErrIdentityUnavailable ErrorKind = "identity_unavailable"
	// ErrStorageUpload means the content store rejected or dropped an upload
	ErrStorageUpload ErrorKind = "storage_upload_failed"
	// ErrKeyRegistration means the content key could not be escrowed with the
	// key server; nothing has reached the ledger yet
	ErrKeyRegistration ErrorKind = "key_registration_failed"
	// ErrBroadcast means the ledger did not accept a transaction
	ErrBroadcast ErrorKind = "broadcast_failed"
	// ErrPayment is a payment build/broadcast failure with no side effect
	// committed; transient and safe to retry
	ErrPayment ErrorKind = "payment_failed"
	// ErrPendingKeyExchange means payment is committed but the decryption
	// capability is missing; retry the capability step only, never re-pay
	ErrPendingKeyExchange ErrorKind = "pending_key_exchange"
	// ErrIntegrity means decrypted content does not match the committed size;
	// fatal to that download attempt, safe to retry the download
	ErrIntegrity ErrorKind = "integrity_violation"
	// ErrMalformedCommitment is a strict decoding failure on untrusted bytes
	ErrMalformedCommitment ErrorKind = "malformed_commitment"
	// ErrInvalidTransition is a programming-contract violation on a token
	ErrInvalidTransition ErrorKind = "invalid_transition"
	// ErrAlreadyUnavailable means the token is no longer purchasable
	ErrAlreadyUnavailable ErrorKind = "already_unavailable"
	// ErrQuery is a transport or indexer failure during search
	ErrQuery ErrorKind = "query_failed"
	// ErrWithdraw is a failure while sweeping value back to the creator
	ErrWithdraw ErrorKind = "withdraw_failed"
)

// Error is the typed marketplace error. Step names the algorithm step at
// which an external failure occurred so a caller can resume from that step
// rather than from the beginning.
type Error struct {
	Kind ErrorKind
	Step string
	Err  error
}

func (e *Error) Error() string {
	switch {
	case e.Err != nil && e.Step != "":
		return fmt.Sprintf("%s at %s: %v", e.Kind, e.Step, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	case e.Step != "":
		return fmt.Sprintf("%s at %s", e.Kind, e.Step)
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches two typed errors by kind, letting errors.Is compare against a
// bare NewError(kind, "", nil) sentinel.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// NewError builds a typed error wrapping an optional cause
func NewError(kind ErrorKind, step string, err error) *Error {
	return &Error{Kind: kind, Step: step, Err: err}
}

// Errorf builds a typed error from a format string
func Errorf(kind ErrorKind, step string, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Step: step, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the ErrorKind from an error chain; empty if untyped
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Retryable reports whether the failure class is safe to retry from the
// failed step without risking a duplicate side effect.
func Retryable(err error) bool {
	switch KindOf(err) {
	case ErrPayment, ErrPendingKeyExchange, ErrIntegrity, ErrStorageUpload, ErrQuery, ErrKeyRegistration:
		return true
	default:
		return false
	}
}
