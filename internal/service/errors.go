package service

import (
	"errors"
	"fmt"
)

// Kind classifies a failed operation. Only KindStorage is transient.
type Kind int

const (
	KindNotFound Kind = iota + 1
	KindForbidden
	KindInvalidState
	KindValidation
	KindScheduleConflict
	KindPreconditionFailed
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindInvalidState:
		return "invalid_state"
	case KindValidation:
		return "validation"
	case KindScheduleConflict:
		return "schedule_conflict"
	case KindPreconditionFailed:
		return "precondition_failed"
	case KindStorage:
		return "storage"
	}
	return "unknown"
}

// Error is returned by every service operation that fails. Code is the stable
// machine-readable reason shown to API callers.
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

var (
	ErrBookingNotFound     = &Error{Kind: KindNotFound, Code: "not_found", Message: "booking not found"}
	ErrCatalogItemNotFound = &Error{Kind: KindNotFound, Code: "service_not_found", Message: "catalog item not found"}

	ErrMembersOnly   = &Error{Kind: KindForbidden, Code: "only_members", Message: "only members may do this"}
	ErrWorkersOnly   = &Error{Kind: KindForbidden, Code: "helpers_only", Message: "only workers may do this"}
	ErrNotAuthorized = &Error{Kind: KindForbidden, Code: "not_authorized", Message: "caller does not own this booking"}

	ErrAlreadyProcessed   = &Error{Kind: KindInvalidState, Code: "request_already_processed", Message: "booking has already been processed"}
	ErrNoCounterOffer     = &Error{Kind: KindInvalidState, Code: "no_counter_offer", Message: "booking has no open counter-offer"}
	ErrNotAccepted        = &Error{Kind: KindInvalidState, Code: "booking_not_accepted", Message: "booking is not accepted"}
	ErrNotReadyToComplete = &Error{Kind: KindInvalidState, Code: "booking_not_ready_for_completion", Message: "booking is not ready for completion"}
	ErrNotPayable         = &Error{Kind: KindInvalidState, Code: "booking_not_payable", Message: "booking cannot be paid in its current status"}
	ErrNotCancellable     = &Error{Kind: KindInvalidState, Code: "booking_not_cancellable", Message: "booking cannot be cancelled in its current status"}

	ErrServiceOrCustomRequired = &Error{Kind: KindValidation, Code: "service_or_custom_required", Message: "either a catalog item or a custom title is required"}
	ErrServiceAndCustom        = &Error{Kind: KindValidation, Code: "service_and_custom_exclusive", Message: "a booking references a catalog item or a custom title, not both"}
	ErrInvalidCounterOffer     = &Error{Kind: KindValidation, Code: "invalid_counter_offer", Message: "counter-offer must be greater than zero"}
	ErrInvalidPrice            = &Error{Kind: KindValidation, Code: "invalid_price", Message: "price must not be negative"}
	ErrInvalidAmount           = &Error{Kind: KindValidation, Code: "invalid_amount", Message: "amount must not be negative"}

	ErrScheduleConflict = &Error{Kind: KindScheduleConflict, Code: "schedule_conflict", Message: "this time slot is already booked in your schedule"}

	ErrProfileIncomplete  = &Error{Kind: KindPreconditionFailed, Code: "profile_incomplete", Message: "please complete your profile before accepting jobs"}
	ErrAccountNotVerified = &Error{Kind: KindPreconditionFailed, Code: "account_not_verified", Message: "your account must be verified by admin before accepting jobs"}
)

func storageError(op string, err error) error {
	return &Error{Kind: KindStorage, Code: "server_error", Message: op, Err: err}
}

// KindOf returns the Kind of err, treating anything unclassified as storage.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindStorage
}

// asServiceError passes classified errors through and wraps the rest as
// storage failures.
func asServiceError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *Error
	if errors.As(err, &se) {
		return err
	}
	return storageError(op, err)
}
