// Package domain defines typed identifiers shared across the engine.
//
// Each ID is a distinct type over uuid.UUID so the compiler rejects
// cross-entity assignment (an EmployeeID can never stand in for a SiteID).
// Parse helpers enforce the invariant that IDs are valid, non-nil UUIDs
// at trust boundaries.
package domain

import (
	"github.com/google/uuid"

	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

type (
	// EmployeeID identifies an enrolled employee.
	EmployeeID uuid.UUID
	// SiteID identifies a geofenced site.
	SiteID uuid.UUID
	// RecordID identifies a durable attendance record.
	RecordID uuid.UUID
	// FlagID identifies an append-only fraud flag.
	FlagID uuid.UUID
	// AttemptID identifies a single verification attempt (audit correlation).
	AttemptID uuid.UUID
)

// NewRecordID returns a fresh random record ID.
func NewRecordID() RecordID { return RecordID(uuid.New()) }

// NewFlagID returns a fresh random flag ID.
func NewFlagID() FlagID { return FlagID(uuid.New()) }

// NewAttemptID returns a fresh random attempt ID.
func NewAttemptID() AttemptID { return AttemptID(uuid.New()) }

func (id EmployeeID) String() string { return uuid.UUID(id).String() }
func (id SiteID) String() string     { return uuid.UUID(id).String() }
func (id RecordID) String() string   { return uuid.UUID(id).String() }
func (id FlagID) String() string     { return uuid.UUID(id).String() }
func (id AttemptID) String() string  { return uuid.UUID(id).String() }

// IsNil reports whether the ID is the zero UUID.
func (id EmployeeID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }
func (id SiteID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id RecordID) IsNil() bool   { return uuid.UUID(id) == uuid.Nil }
func (id AttemptID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }

func parseUUID(raw string) (uuid.UUID, error) {
	if raw == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id is required")
	}
	parsed, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "id is not a valid UUID")
	}
	if parsed == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "id must not be the nil UUID")
	}
	return parsed, nil
}

// ParseEmployeeID parses and validates an employee ID string.
func ParseEmployeeID(raw string) (EmployeeID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return EmployeeID{}, err
	}
	return EmployeeID(parsed), nil
}

// ParseSiteID parses and validates a site ID string.
func ParseSiteID(raw string) (SiteID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return SiteID{}, err
	}
	return SiteID(parsed), nil
}

// ParseRecordID parses and validates a record ID string.
func ParseRecordID(raw string) (RecordID, error) {
	parsed, err := parseUUID(raw)
	if err != nil {
		return RecordID{}, err
	}
	return RecordID(parsed), nil
}
