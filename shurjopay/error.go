package shurjopay

import "fmt"

type ErrorReason string

const (
	REASON_AUTH_FAILED        ErrorReason = "AUTH_FAILED"
	REASON_REQUEST_FAILED     ErrorReason = "REQUEST_FAILED"
	REASON_MALFORMED_RESPONSE ErrorReason = "MALFORMED_RESPONSE"
	REASON_PAYMENT_REJECTED   ErrorReason = "PAYMENT_REJECTED"
	REASON_TIMEOUT            ErrorReason = "TIMEOUT"
)

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newShurjopayError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewAuthFailedError(message string) *Error {
	return newShurjopayError(REASON_AUTH_FAILED, message, nil)
}

func NewRequestFailedError(message string, cause error) *Error {
	return newShurjopayError(REASON_REQUEST_FAILED, message, cause)
}

func NewMalformedResponseError(message string, cause error) *Error {
	return newShurjopayError(REASON_MALFORMED_RESPONSE, message, cause)
}

func NewPaymentRejectedError(message string) *Error {
	return newShurjopayError(REASON_PAYMENT_REJECTED, message, nil)
}

func NewTimeoutError(message string, cause error) *Error {
	return newShurjopayError(REASON_TIMEOUT, message, cause)
}
