package payfast

import "errors"

type ErrorKind string

const (
	KindInvalidRequest          ErrorKind = "invalid_request"
	KindInvalidAmount           ErrorKind = "invalid_amount"
	KindMissingCredentials      ErrorKind = "missing_credentials"
	KindMethodNotAllowed        ErrorKind = "method_not_allowed"
	KindInvalidSignature        ErrorKind = "invalid_signature"
	KindPaymentValidationFailed ErrorKind = "payment_validation_failed"
	KindPersistenceFailure      ErrorKind = "persistence_failure"
	KindLicenseIssuanceFailure  ErrorKind = "license_issuance_failure"
)

// Error carries a kind so callers can branch without parsing messages.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrInvalidRequest          = &Error{Kind: KindInvalidRequest, Msg: "Invalid request body"}
	ErrInvalidAmount           = &Error{Kind: KindInvalidAmount, Msg: "Invalid amount"}
	ErrMissingCredentials      = &Error{Kind: KindMissingCredentials, Msg: "PayFast credentials not configured"}
	ErrMethodNotAllowed        = &Error{Kind: KindMethodNotAllowed, Msg: "Method not allowed"}
	ErrInvalidSignature        = &Error{Kind: KindInvalidSignature, Msg: "Invalid signature"}
	ErrPaymentValidationFailed = &Error{Kind: KindPaymentValidationFailed, Msg: "Invalid payment"}
	ErrPersistenceFailure      = &Error{Kind: KindPersistenceFailure, Msg: "Database error"}
	ErrLicenseIssuanceFailure  = &Error{Kind: KindLicenseIssuanceFailure, Msg: "License issuance failed"}
)

// Wrap returns a copy of sentinel with err attached as the cause.
func Wrap(sentinel *Error, err error) *Error {
	return &Error{Kind: sentinel.Kind, Msg: sentinel.Msg, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain, or "" if none.
func KindOf(err error) ErrorKind {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Kind
	}
	return ""
}
