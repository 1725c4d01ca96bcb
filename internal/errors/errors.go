package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
)

// Kind is the classified outcome of a failed gateway operation.
type Kind string

const (
	KindConfiguration Kind = "configuration_error"
	KindAuthorization Kind = "authorization_error"
	KindUpstream      Kind = "upstream_protocol_error"
	KindSend          Kind = "send_error"
)

// Error carries a classified failure along with the upstream host that was
// contacted, where one is known.
type Error struct {
	Kind    Kind
	Host    string
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.Host != "" {
		return fmt.Sprintf("%s: %s (host: %s)", e.Kind, e.Message, e.Host)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.cause
}

// Configuration marks caller input as invalid or incomplete, before any
// network attempt was made.
func Configuration(format string, args ...interface{}) *Error {
	return &Error{
		Kind:    KindConfiguration,
		Message: fmt.Sprintf(format, args...),
	}
}

// Authorization marks a rejection by the caller-facing auth gate.
func Authorization(message string) *Error {
	return &Error{
		Kind:    KindAuthorization,
		Message: message,
	}
}

// Upstream marks a mail-server or network failure during any protocol call.
func Upstream(host string, err error) *Error {
	return &Error{
		Kind:    KindUpstream,
		Host:    host,
		Message: err.Error(),
		cause:   err,
	}
}

// Send marks a message-submission failure.
func Send(host string, err error) *Error {
	return &Error{
		Kind:    KindSend,
		Host:    host,
		Message: err.Error(),
		cause:   err,
	}
}

// Classify maps an arbitrary failure into a classified error. Errors that are
// already classified pass through unchanged; anything else raised while
// talking to the given host becomes an upstream protocol error.
func Classify(err error, host string) *Error {
	var classified *Error
	if stderrors.As(err, &classified) {
		return classified
	}
	return Upstream(host, err)
}

// HTTPStatus maps a classified error to the response status surfaced to the
// caller.
func HTTPStatus(err error) int {
	var classified *Error
	if !stderrors.As(err, &classified) {
		return http.StatusInternalServerError
	}
	switch classified.Kind {
	case KindConfiguration:
		return http.StatusBadRequest
	case KindAuthorization:
		return http.StatusUnauthorized
	case KindUpstream, KindSend:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
