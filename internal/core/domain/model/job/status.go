package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
)

// Status represents the lifecycle state of a delivery job.
// It implements a state machine with a single forward success path and a
// failure edge from every claimed, non-terminal state:
//
//	Unclaimed ──> Claimed ──> PickedUp ──> EnRoute ──> Nearby ──> Arrived ──> Delivered
//	                  │            │           │           │          │
//	                  └────────────┴───────────┴───────────┴──────────┴──> Failed
//
// No transition ever skips a forward state or regresses. Delivered and Failed
// are terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Unclaimed is the initial status: the job is waiting for a driver.
	Unclaimed

	// Claimed indicates a driver has taken the job and location tracking has started.
	Claimed

	// PickedUp indicates the driver has collected the shipment from the dispensary.
	PickedUp

	// EnRoute indicates the driver is travelling to the delivery address.
	EnRoute

	// Nearby indicates the driver is close to the delivery address.
	Nearby

	// Arrived indicates the driver is at the delivery address.
	Arrived

	// Delivered is the terminal success status. Earnings become payable.
	Delivered

	// Failed is the terminal failure status. Payability of earnings depends
	// on the recorded failure reason.
	Failed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "Unknown",
		Unclaimed: "Unclaimed",
		Claimed:   "Claimed",
		PickedUp:  "PickedUp",
		EnRoute:   "EnRoute",
		Nearby:    "Nearby",
		Arrived:   "Arrived",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Unclaimed: "Unclaimed",
		Claimed:   "Claimed",
		PickedUp:  "PickedUp",
		EnRoute:   "EnRoute",
		Nearby:    "Nearby",
		Arrived:   "Arrived",
		Delivered: "Delivered",
		Failed:    "Failed",
	}
}

// ParseStatus converts a status name received at a boundary into a Status.
// Matching is exact; unknown names are rejected.
func ParseStatus(name string) (Status, error) {
	for status, str := range getValidStatusStrings() {
		if str == name {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
		fmt.Errorf("%q is not a valid status", name))
}

// Validate checks if the Status value is one of the defined lifecycle states.
// Unknown (0) and out-of-range values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the human-readable name of the status.
// Implements fmt.Stringer and is safe on any value, including invalid ones.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// Next returns the immediate successor on the success path.
// Returns an error for terminal statuses and for Unclaimed, whose only exit
// is the claim operation, not a generic advance.
func (s Status) Next() (Status, error) {
	switch s {
	case Claimed:
		return PickedUp, nil
	case PickedUp:
		return EnRoute, nil
	case EnRoute:
		return Nearby, nil
	case Nearby:
		return Arrived, nil
	case Arrived:
		return Delivered, nil
	default:
		return Unknown, errs.NewValueIsInvalidErrorWithCause("status",
			fmt.Errorf("%s has no forward successor", s.String()))
	}
}

// CanAdvanceTo reports whether target is the single legal forward edge from
// this status for the advance operation. Claiming (Unclaimed -> Claimed) and
// completing (Arrived -> Delivered) are dedicated operations with their own
// preconditions and are not reachable through advance.
func (s Status) CanAdvanceTo(target Status) bool {
	if target == Claimed || target == Delivered || target == Failed {
		return false
	}
	next, err := s.Next()
	if err != nil {
		return false
	}
	return next == target
}

// IsTerminal reports whether the status has no further legal transition.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Failed
}

// IsTracking reports whether location samples should be ingested in this
// status. Tracking runs from claim until the job reaches a terminal status.
func (s Status) IsTracking() bool {
	return s == Claimed || s == PickedUp || s == EnRoute || s == Nearby || s == Arrived
}

// CanFail reports whether the failure edge exists from this status.
// A job can fail from any claimed, non-terminal status; an unclaimed job has
// nothing yet to fail.
func (s Status) CanFail() bool {
	return s.IsTracking()
}
