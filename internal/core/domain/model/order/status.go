package order

import (
	"fmt"

	"ineed/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
// It implements a state machine with defined transitions:
//
//	Active ──> Completed   (terminal)
//	Active ──> Cancelled   (terminal)
//
// Offer acceptance does not change the status: an accepted order stays
// Active with a provider bound. Completion and cancellation are explicit,
// one-way transitions.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Active is the initial status when an order is first created.
	// Only Active orders accept offers, acceptance, completion or cancellation.
	Active

	// Completed indicates the order was fulfilled by its bound provider.
	// Terminal: the only state in which reviews may be submitted.
	Completed

	// Cancelled indicates the client withdrew the order.
	// Terminal: no further transitions or offers are possible.
	Cancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Active:    "Active",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Active:    "Active",
		Completed: "Completed",
		Cancelled: "Cancelled",
	}
}

// Validate checks if the Status value is one of Active, Completed, Cancelled.
// Unknown (0) and any other values are invalid. Used to vet Status values
// arriving from external sources such as the database.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// ParseStatus converts the stored representation back to a Status.
func ParseStatus(s string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", s))
}

// String returns the human-readable name of the status.
// Safe to call on any Status value; invalid values render as "Unknown".
// Implements fmt.Stringer.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	return s == Completed || s == Cancelled
}

// Complete transitions the status to Completed.
//
// Valid transitions:
//   - Active -> Completed
//
// Any other source state fails with an InvalidOperationError; completing a
// completed or cancelled order is never allowed.
func (s Status) Complete() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidOperationErrorWithCause(
			"only active orders may be completed",
			fmt.Errorf("status is %s", s.String()),
		)
	}

	return Completed, nil
}

// Cancel transitions the status to Cancelled.
//
// Valid transitions:
//   - Active -> Cancelled
//
// Any other source state fails with an InvalidOperationError.
func (s Status) Cancel() (Status, error) {
	if s != Active {
		return 0, errs.NewInvalidOperationErrorWithCause(
			"only active orders may be cancelled",
			fmt.Errorf("status is %s", s.String()),
		)
	}

	return Cancelled, nil
}
