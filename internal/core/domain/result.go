package domain

import "errors"

// Envelope status codes. The upstream API speaks an HTTP-like envelope where
// 200 is the only success signal.
const (
	CodeOK              = 200
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeNotFound        = 404
	CodePayloadTooLarge = 413
	CodeUpstreamFailure = 502
)

// Result statuses.
const (
	StatusSuccess = "success"
	StatusFailure = "failure"
)

// Result is the uniform boundary contract every public cache operation
// returns. It replaces the duck-typed status/code/responseData envelope of
// the upstream API with a tagged value: either OK carrying data, or a
// failure carrying a sentinel error from this package. Operations return a
// Result instead of propagating errors so that no async entry point can
// escape with an uncaught failure.
type Result[T any] struct {
	Status  string
	Code    int
	Message string
	Data    T

	err error
}

// OK returns a success Result carrying data.
func OK[T any](data T) Result[T] {
	return Result[T]{Status: StatusSuccess, Code: CodeOK, Data: data}
}

// Fail returns a failure Result for the given sentinel error. The code is
// derived from the error taxonomy.
func Fail[T any](err error) Result[T] {
	return Result[T]{
		Status:  StatusFailure,
		Code:    codeFor(err),
		Message: err.Error(),
		err:     err,
	}
}

// Failed reports whether the result is a failure.
func (r Result[T]) Failed() bool { return r.Status == StatusFailure }

// Err returns the failure sentinel, or nil for a success.
func (r Result[T]) Err() error { return r.err }

// Is reports whether the result failed with the given sentinel.
func (r Result[T]) Is(target error) bool { return r.err != nil && errors.Is(r.err, target) }

func codeFor(err error) int {
	switch {
	case errors.Is(err, ErrProjectNotFound):
		return CodeBadRequest
	case errors.Is(err, ErrAuthenticationFailure):
		return CodeUnauthorized
	case errors.Is(err, ErrVulnerabilityNotFound):
		return CodeNotFound
	case errors.Is(err, ErrConfigureFilter):
		return CodePayloadTooLarge
	case errors.Is(err, ErrModeSwitchDeclined), errors.Is(err, ErrTimerAlreadyRunning):
		return CodeBadRequest
	default:
		return CodeUpstreamFailure
	}
}

// Envelope is the HTTP-like response shape the upstream API client returns
// for every call. Code 200 is the only success signal; the payload fields
// are populated per operation.
type Envelope struct {
	Code     int
	Message  string
	Report   *Node
	Overview *Overview
	Usage    *Usage
	Advice   string
	Archived bool
}

// OK reports whether the envelope carries a success code.
func (e Envelope) OK() bool { return e.Code == CodeOK }
