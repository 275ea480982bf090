package ports

import (
	"context"
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// RecordsPort persists attendance records and fraud flags. Implementations
// must enforce the one-record-per-employee-per-date invariant and surface
// violations as a conflict error.
type RecordsPort interface {
	// Find returns the employee's record for the date, or nil, nil when
	// none exists.
	Find(ctx context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Record, error)

	// Create inserts a new record. A record already existing for the
	// employee and date is a conflict, never an overwrite.
	Create(ctx context.Context, record *attendance.Record) error

	// ApplyCheckout mutates the check-out fields of an open record.
	ApplyCheckout(ctx context.Context, recordID id.RecordID, checkout attendance.Checkout) error

	// ListSince returns the employee's records with activity at or after
	// the cutoff, newest first. Feeds the impossible-travel rule.
	ListSince(ctx context.Context, employeeID id.EmployeeID, since time.Time) ([]attendance.Record, error)

	// CountAccepted returns the employee's all-time record count.
	CountAccepted(ctx context.Context, employeeID id.EmployeeID) (int, error)

	// DeviceSeen reports whether the fingerprint appears on any of the
	// employee's prior records.
	DeviceSeen(ctx context.Context, employeeID id.EmployeeID, fingerprint string) (bool, error)

	// AppendFlags persists fraud flags. Flags are append-only and are
	// written even when the attempt they annotate was rejected.
	AppendFlags(ctx context.Context, flags []fraud.Flag) error

	// List returns records matching the filter, newest first. Read-only
	// admin surface.
	List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error)
}
