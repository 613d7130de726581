package registration

import (
	"fmt"
	"strings"
)

type ErrorReason string

const (
	REASON_INVALID_INPUT                   ErrorReason = "INVALID_INPUT"
	REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL ErrorReason = "FAILED_TO_TRANSLATE_TO_DB_MODEL"
	REASON_FAILED_TO_WRITE                 ErrorReason = "FAILED_TO_WRITE"
	REASON_FAILED_TO_FETCH                 ErrorReason = "FAILED_TO_FETCH"
	REASON_REGISTRATION_ALREADY_EXISTS     ErrorReason = "REGISTRATION_ALREADY_EXISTS"
	REASON_REGISTRATION_DOES_NOT_EXIST     ErrorReason = "REGISTRATION_DOES_NOT_EXIST"
	REASON_PAYMENT_INITIATION_FAILED       ErrorReason = "PAYMENT_INITIATION_FAILED"
	REASON_PAYMENT_NOT_VERIFIED            ErrorReason = "PAYMENT_NOT_VERIFIED"
	REASON_NO_REGISTRATIONS                ErrorReason = "NO_REGISTRATIONS"
)

type FieldViolation struct {
	Field  string
	Reason string
}

type Error struct {
	Reason  ErrorReason
	Message string
	Cause   error

	// Fields is only set for REASON_INVALID_INPUT.
	Fields []FieldViolation
}

func (e *Error) Error() string {
	if len(e.Fields) > 0 {
		violations := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			violations[i] = fmt.Sprintf("%s: %s", f.Field, f.Reason)
		}
		return fmt.Sprintf("%s: %s. Violations: %s", e.Reason, e.Message, strings.Join(violations, "; "))
	}

	return fmt.Sprintf("%s: %s. Cause: %s", e.Reason, e.Message, e.Cause)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

func newRegistrationError(reason ErrorReason, message string, cause error) *Error {
	return &Error{
		Reason:  reason,
		Message: message,
		Cause:   cause,
	}
}

func NewInvalidInputError(fields []FieldViolation) *Error {
	err := newRegistrationError(REASON_INVALID_INPUT, "Registration input is invalid", nil)
	err.Fields = fields
	return err
}

func NewFailedToWriteError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_WRITE, message, cause)
}

func NewFailedToTranslateToDBModelError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_TRANSLATE_TO_DB_MODEL, message, cause)
}

func NewFailedToFetchError(message string, cause error) *Error {
	return newRegistrationError(REASON_FAILED_TO_FETCH, message, cause)
}

func NewRegistrationAlreadyExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_ALREADY_EXISTS, message, cause)
}

func NewRegistrationDoesNotExistsError(message string, cause error) *Error {
	return newRegistrationError(REASON_REGISTRATION_DOES_NOT_EXIST, message, cause)
}

func NewPaymentInitiationFailedError(message string, cause error) *Error {
	return newRegistrationError(REASON_PAYMENT_INITIATION_FAILED, message, cause)
}

func NewPaymentNotVerifiedError(message string, cause error) *Error {
	return newRegistrationError(REASON_PAYMENT_NOT_VERIFIED, message, cause)
}

func NewNoRegistrationsError() *Error {
	return newRegistrationError(REASON_NO_REGISTRATIONS, "No registrations found", nil)
}
