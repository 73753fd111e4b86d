package commands

import (
	"errors"

	"dispatch/internal/core/domain/model/job"
	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/guard"
)

var (
	ErrFailJobCommandIsNotConstructed = errors.New(
		"FailJobCommand must be created via NewFailJobCommand constructor",
	)
	ErrFailureNoteIsRequired = errors.New("failure note is required")
)

// FailJobCommand represents the assigned driver abandoning a delivery with a
// coded reason. The reason code decides whether the quoted earnings remain
// payable; the free-text note is the mandatory audit trail.
type FailJobCommand struct { //nolint:recvcheck //using for validation
	jobID        kernel.UUID
	driverID     kernel.UUID
	reason       job.FailureReason
	note         string
	evidenceRefs []string

	guard guard.ConstructorGuard
}

// NewFailJobCommand creates a command to fail a delivery job.
// The reason must be a recognized code and the note must not be empty;
// evidence references are optional.
func NewFailJobCommand(
	jobID kernel.UUID,
	driverID kernel.UUID,
	reason job.FailureReason,
	note string,
	evidenceRefs []string,
) (FailJobCommand, error) {
	if err := errors.Join(
		jobID.Validate(),
		driverID.Validate(),
	); err != nil {
		return FailJobCommand{}, err
	}
	if _, err := job.ParseFailureReason(reason.String()); err != nil {
		return FailJobCommand{}, err
	}
	if note == "" {
		return FailJobCommand{}, ErrFailureNoteIsRequired
	}

	refs := make([]string, len(evidenceRefs))
	copy(refs, evidenceRefs)

	return FailJobCommand{
		jobID:        jobID,
		driverID:     driverID,
		reason:       reason,
		note:         note,
		evidenceRefs: refs,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c FailJobCommand) Validate() error {
	return c.guard.Validate(ErrFailJobCommandIsNotConstructed)
}

// JobID returns the job being failed.
func (c FailJobCommand) JobID() kernel.UUID {
	return c.jobID
}

// DriverID returns the acting driver.
func (c FailJobCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Reason returns the coded failure reason.
func (c FailJobCommand) Reason() job.FailureReason {
	return c.reason
}

// Note returns the driver's free-text explanation.
func (c FailJobCommand) Note() string {
	return c.note
}

// EvidenceRefs returns references to supporting evidence, such as photo
// object keys.
func (c FailJobCommand) EvidenceRefs() []string {
	refs := make([]string, len(c.evidenceRefs))
	copy(refs, c.evidenceRefs)
	return refs
}
