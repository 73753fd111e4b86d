package job

import (
	"fmt"

	"dispatch/internal/pkg/errs"
	"dispatch/internal/pkg/guard"
)

// FailureCategory partitions failure reasons by which party the failure is
// attributable to. The category fully determines whether the driver is paid.
type FailureCategory int

const (
	// CategoryCustomerSide covers failures caused by the customer. Driver is paid.
	CategoryCustomerSide FailureCategory = iota + 1

	// CategoryLocationSide covers failures caused by the delivery location. Driver is paid.
	CategoryLocationSide

	// CategoryDriverSide covers failures caused by the driver. Driver is not paid.
	CategoryDriverSide

	// CategorySystemSide covers platform failures and unclassified reasons. Driver is paid.
	CategorySystemSide
)

// FailureReason is a closed enumeration of the reasons a delivery can fail.
// The set is fixed at compile time; payability is a property of the reason,
// never of driver input.
type FailureReason string

const (
	ReasonCustomerNoShow       FailureReason = "customer_no_show"
	ReasonCustomerNotHome      FailureReason = "customer_not_home"
	ReasonCustomerRefused      FailureReason = "customer_refused"
	ReasonWrongAddressGiven    FailureReason = "wrong_address_given"
	ReasonUnsafeLocation       FailureReason = "unsafe_location"
	ReasonAddressNotFound      FailureReason = "address_not_found"
	ReasonAccessDenied         FailureReason = "access_denied"
	ReasonLocationInaccessible FailureReason = "location_inaccessible"
	ReasonDriverVehicleIssue   FailureReason = "driver_vehicle_issue"
	ReasonDriverEmergency      FailureReason = "driver_emergency"
	ReasonDriverError          FailureReason = "driver_error"
	ReasonSystemError          FailureReason = "system_error"
	ReasonOther                FailureReason = "other"
)

func getReasonCategories() map[FailureReason]FailureCategory {
	return map[FailureReason]FailureCategory{
		ReasonCustomerNoShow:       CategoryCustomerSide,
		ReasonCustomerNotHome:      CategoryCustomerSide,
		ReasonCustomerRefused:      CategoryCustomerSide,
		ReasonWrongAddressGiven:    CategoryCustomerSide,
		ReasonUnsafeLocation:       CategoryCustomerSide,
		ReasonAddressNotFound:      CategoryLocationSide,
		ReasonAccessDenied:         CategoryLocationSide,
		ReasonLocationInaccessible: CategoryLocationSide,
		ReasonDriverVehicleIssue:   CategoryDriverSide,
		ReasonDriverEmergency:      CategoryDriverSide,
		ReasonDriverError:          CategoryDriverSide,
		ReasonSystemError:          CategorySystemSide,
		ReasonOther:                CategorySystemSide,
	}
}

// ParseFailureReason validates a reason code arriving from a transport
// boundary against the closed enumeration.
func ParseFailureReason(code string) (FailureReason, error) {
	reason := FailureReason(code)
	if _, ok := getReasonCategories()[reason]; !ok {
		return "", errs.NewValueIsInvalidErrorWithCause("failureReason",
			fmt.Errorf("%q is not a recognized failure reason", code))
	}
	return reason, nil
}

// Category returns the attribution category of the reason.
// Panics on a reason outside the enumeration: the set is closed, so an
// unrecognized code can only be a programming error upstream of validation.
func (r FailureReason) Category() FailureCategory {
	category, ok := getReasonCategories()[r]
	if !ok {
		panic(fmt.Sprintf("unrecognized failure reason %q", string(r)))
	}
	return category
}

// IsPayable reports whether a delivery failed for this reason still pays the
// driver its quoted earnings. Total over the closed enumeration; panics on an
// unrecognized code. This is the single source of truth for the payable flag
// of a failure record.
func (r FailureReason) IsPayable() bool {
	return r.Category() != CategoryDriverSide
}

// String returns the wire code of the reason.
func (r FailureReason) String() string {
	return string(r)
}

// ErrFailureRecordIsNotConstructed is returned when a FailureRecord was not
// created via NewFailureRecord.
var ErrFailureRecordIsNotConstructed = errs.NewValueIsRequiredError(
	"failure record must be created via NewFailureRecord constructor")

// FailureRecord captures why a delivery failed. The note is the audit trail
// for disputes and is mandatory. The payable flag is derived from the reason
// at construction time and can never be supplied by the caller.
type FailureRecord struct {
	reason       FailureReason
	note         string
	evidenceRefs []string
	payable      bool
	guard        guard.ConstructorGuard
}

// NewFailureRecord creates a FailureRecord for the given reason.
// The note must be non-empty; the payable disposition is computed from the
// reason and frozen into the record.
func NewFailureRecord(reason FailureReason, note string, evidenceRefs []string) (FailureRecord, error) {
	if _, err := ParseFailureReason(string(reason)); err != nil {
		return FailureRecord{}, err
	}
	if note == "" {
		return FailureRecord{}, errs.NewValueIsRequiredError("failureNote")
	}

	refs := make([]string, len(evidenceRefs))
	copy(refs, evidenceRefs)

	return FailureRecord{
		reason:       reason,
		note:         note,
		evidenceRefs: refs,
		payable:      reason.IsPayable(),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Reason returns the failure reason code.
func (f FailureRecord) Reason() FailureReason {
	return f.reason
}

// Note returns the free-text audit note.
func (f FailureRecord) Note() string {
	return f.note
}

// EvidenceRefs returns references to photo evidence, if any.
func (f FailureRecord) EvidenceRefs() []string {
	refs := make([]string, len(f.evidenceRefs))
	copy(refs, f.evidenceRefs)
	return refs
}

// Payable reports whether the job's quoted earnings count toward the driver's
// payable balance despite the failure.
func (f FailureRecord) Payable() bool {
	return f.payable
}

// Validate checks that the record was created through NewFailureRecord.
func (f FailureRecord) Validate() error {
	return f.guard.Validate(ErrFailureRecordIsNotConstructed)
}
