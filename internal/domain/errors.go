package domain

import (
	"errors"
	"fmt"
)

type ErrorKind string

const (
	KindMissingFile         ErrorKind = "missing_file"
	KindInvalidUploadType   ErrorKind = "invalid_upload_type"
	KindPayloadTooLarge     ErrorKind = "payload_too_large"
	KindServerMisconfigured ErrorKind = "server_misconfigured"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindEmptyResponse       ErrorKind = "empty_response"
	KindUnparseableResponse ErrorKind = "unparseable_response"
	KindNonFoodDetected     ErrorKind = "non_food_detected"
	KindUnexpected          ErrorKind = "unexpected_error"
)

// Sentinels for errors.Is checks.
var (
	ErrMissingFile         = &Error{Kind: KindMissingFile}
	ErrInvalidUploadType   = &Error{Kind: KindInvalidUploadType}
	ErrPayloadTooLarge     = &Error{Kind: KindPayloadTooLarge}
	ErrServerMisconfigured = &Error{Kind: KindServerMisconfigured}
	ErrProviderUnavailable = &Error{Kind: KindProviderUnavailable}
	ErrEmptyResponse       = &Error{Kind: KindEmptyResponse}
	ErrUnparseableResponse = &Error{Kind: KindUnparseableResponse}
	ErrNonFoodDetected     = &Error{Kind: KindNonFoodDetected}
	ErrUnexpected          = &Error{Kind: KindUnexpected}
)

// Error is a terminal pipeline failure for one request.
type Error struct {
	Kind    ErrorKind
	Message string
	// Raw carries the model text for unparseable responses.
	Raw string
	Err error
}

func (e *Error) Error() string {
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return string(e.Kind)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on kind so wrapped errors compare equal to the sentinels.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

func NewError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf returns the kind of the first *Error in the chain, or
// KindUnexpected when there is none.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return KindUnexpected
}
