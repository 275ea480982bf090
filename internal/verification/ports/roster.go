package ports

//go:generate mockgen -destination=mocks/mocks.go -package=mocks github.com/rortizs/biometria-Sasvin/internal/verification/ports RosterPort,RecordsPort,EmbedderPort,AuditPort

import (
	"context"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// RosterPort exposes the HR-owned reference data the engine verifies
// against. The engine never writes through this port; enrollment,
// site management and scheduling belong to the HR system.
type RosterPort interface {
	// ListCandidates returns every active employee with at least one
	// enrolled face template.
	ListCandidates(ctx context.Context) ([]facematch.Candidate, error)

	// ActiveSites returns every site distances are measured against.
	// Which of them an attempt is actually validated against is decided
	// per employee via AssignedSites.
	ActiveSites(ctx context.Context) ([]geofence.Site, error)

	// AssignedSites returns the IDs of the sites the employee is
	// assigned to. An empty result excludes the geofence check from the
	// decision for that employee.
	AssignedSites(ctx context.Context, employeeID id.EmployeeID) ([]id.SiteID, error)

	// DaySchedule returns the expected working window for the employee
	// on the given date. Returns nil, nil when no schedule exists
	// (status derivation treats that as unconditionally present).
	DaySchedule(ctx context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Schedule, error)
}
