package booking

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrorKind classifies booking failures for callers.
type ErrorKind string

const (
	KindValidation         ErrorKind = "ValidationError"
	KindNotFound           ErrorKind = "NotFoundError"
	KindCancellationWindow ErrorKind = "CancellationWindowError"
	KindConflict           ErrorKind = "ConflictError"
	KindDependency         ErrorKind = "DependencyError"
	KindForbidden          ErrorKind = "ForbiddenError"
)

// Sentinels for errors.Is checks against a *BookingError.
var (
	ErrValidation         = errors.New("validation error")
	ErrNotFound           = errors.New("not found")
	ErrCancellationWindow = errors.New("cancellation window violated")
	ErrConflict           = errors.New("conflict")
	ErrDependency         = errors.New("dependency unavailable")
	ErrForbidden          = errors.New("forbidden")
)

var kindSentinels = map[ErrorKind]error{
	KindValidation:         ErrValidation,
	KindNotFound:           ErrNotFound,
	KindCancellationWindow: ErrCancellationWindow,
	KindConflict:           ErrConflict,
	KindDependency:         ErrDependency,
	KindForbidden:          ErrForbidden,
}

// Reason codes carried by BookingError.Code.
const (
	CodeMissingField        = "missing_field"
	CodeInvalidIdentifier   = "invalid_identifier"
	CodeInvalidEmail        = "invalid_email"
	CodeInvalidPhone        = "invalid_phone"
	CodeInvalidTimeFormat   = "invalid_time_format"
	CodeInvalidDate         = "invalid_date"
	CodeDateInPast          = "date_in_past"
	CodeInvalidService      = "invalid_service"
	CodeInvalidOTP          = "invalid_otp"
	CodeInvalidName         = "invalid_name"
	CodeInvalidFilter       = "invalid_filter"
	CodeFieldNotEditable    = "field_not_editable"
	CodePaymentRequired     = "payment_required"
	CodePaymentNotConfirmed = "payment_not_confirmed"
	CodeBookingNotFound     = "booking_not_found"
	CodeUserNotFound        = "user_not_found"
	CodeSalonNotFound       = "salon_not_found"
	CodeCancellationWindow  = "cancellation_window"
	CodeInvalidTransition   = "invalid_transition"
	CodeConcurrentUpdate    = "concurrent_update"
	CodeDuplicate           = "duplicate_booking"
	CodeForbidden           = "forbidden"
	CodeDependency          = "dependency_unavailable"
)

// BookingError is the typed error returned by every booking operation.
type BookingError struct {
	Kind    ErrorKind
	Code    string
	Message string
	Field   string
	cause   error
}

func (e *BookingError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BookingError) Unwrap() error {
	return e.cause
}

// Is matches the sentinel for the error's kind.
func (e *BookingError) Is(target error) bool {
	return kindSentinels[e.Kind] == target
}

func newValidationError(code, field, msg string) error {
	return &BookingError{Kind: KindValidation, Code: code, Field: field, Message: msg}
}

func newNotFoundError(code, msg string) error {
	return &BookingError{Kind: KindNotFound, Code: code, Message: msg}
}

func newConflictError(code, msg string) error {
	return &BookingError{Kind: KindConflict, Code: code, Message: msg}
}

func newForbiddenError(msg string) error {
	return &BookingError{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

// newDependencyError keeps the collaborator failure, with a stack, as the cause.
func newDependencyError(op string, cause error) error {
	return &BookingError{
		Kind:    KindDependency,
		Code:    CodeDependency,
		Message: op + " is temporarily unavailable",
		cause:   errors.WithStack(cause),
	}
}

// AsBookingError extracts the typed error, if any.
func AsBookingError(err error) (*BookingError, bool) {
	var be *BookingError
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
