package payout

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a payout request.
// Transitions: Pending -> Approved -> Paid, Pending -> Rejected.
// Paid and Rejected are terminal; Approved only moves forward to Paid.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	Unknown Status = iota

	// Pending is the initial status: the request awaits the dispensary owner.
	Pending

	// Approved indicates the owner accepted the request and recorded a
	// payment reference. The requested amount is locked.
	Approved

	// Paid is the terminal success status.
	Paid

	// Rejected is the terminal refusal status. The covered earnings return
	// to the driver's derived payable balance.
	Rejected
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:  "Unknown",
		Pending:  "Pending",
		Approved: "Approved",
		Paid:     "Paid",
		Rejected: "Rejected",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:  "Pending",
		Approved: "Approved",
		Paid:     "Paid",
		Rejected: "Rejected",
	}
}

// ParseStatus converts a status name received at a boundary into a Status.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", name))
}

// Validate checks if the Status value is one of the defined states.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the status has no further legal transition.
func (s Status) IsTerminal() bool {
	return s == Paid || s == Rejected
}

// Locked reports whether a request in this status locks its amount against
// the driver's payable balance. Pending locks too: that is what prevents two
// simultaneous requests from double-spending the same earnings.
func (s Status) Locked() bool {
	return s == Pending || s == Approved || s == Paid
}
