package domain

import (
	"errors"
	"fmt"
)

// ValidationError is a rejected input: bad dates, unknown references,
// or an invariant violation. Never retried.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// NotFoundError covers unknown ids, unknown process tokens and missing
// artifact files.
type NotFoundError struct {
	Resource string
}

func (e *NotFoundError) Error() string { return e.Resource + " not found" }

func NotFound(resource string) error { return &NotFoundError{Resource: resource} }

func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// NotReadyError is returned when an artifact is requested before the
// report completes; it carries the current status for the caller.
type NotReadyError struct {
	Status ReportStatus
}

func (e *NotReadyError) Error() string {
	return fmt.Sprintf("Report is not ready for download. Current status: %s", e.Status)
}

func IsNotReady(err error) bool {
	var nr *NotReadyError
	return errors.As(err, &nr)
}
