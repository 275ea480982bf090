// Package postgres reads the roster from the enrollment database. The
// engine never writes these tables; enrollment tooling owns them.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Store implements the roster reads on PostgreSQL.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// ListCandidates returns active employees with their enrolled templates.
// Embeddings are stored as float8[] and decoded via pq.Float64Array.
func (s *Store) ListCandidates(ctx context.Context) ([]facematch.Candidate, error) {
	query := `
		SELECT t.employee_id, t.embedding, t.enrolled_at
		FROM face_templates t
		JOIN employees e ON e.id = t.employee_id
		WHERE e.active
		ORDER BY t.employee_id, t.enrolled_at`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query face templates: %w", err)
	}
	defer rows.Close()

	var (
		candidates []facematch.Candidate
		current    *facematch.Candidate
	)
	for rows.Next() {
		var (
			employeeID uuid.UUID
			embedding  pq.Float64Array
			enrolledAt time.Time
		)
		if err := rows.Scan(&employeeID, &embedding, &enrolledAt); err != nil {
			return nil, fmt.Errorf("scan face template: %w", err)
		}

		owner := id.EmployeeID(employeeID)
		if current == nil || current.EmployeeID != owner {
			candidates = append(candidates, facematch.Candidate{EmployeeID: owner})
			current = &candidates[len(candidates)-1]
		}
		current.Templates = append(current.Templates, facematch.Template{
			EmployeeID: owner,
			Embedding:  []float64(embedding),
			EnrolledAt: enrolledAt,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate face templates: %w", err)
	}
	return candidates, nil
}

// ActiveSites returns the sites attempts are validated against.
func (s *Store) ActiveSites(ctx context.Context) ([]geofence.Site, error) {
	query := `
		SELECT id, name, latitude, longitude, radius_meters, require_geofence
		FROM sites
		WHERE active
		ORDER BY name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query sites: %w", err)
	}
	defer rows.Close()

	var sites []geofence.Site
	for rows.Next() {
		var (
			site   geofence.Site
			siteID uuid.UUID
		)
		if err := rows.Scan(
			&siteID,
			&site.Name,
			&site.Center.Latitude,
			&site.Center.Longitude,
			&site.RadiusMeters,
			&site.RequireGeofence,
		); err != nil {
			return nil, fmt.Errorf("scan site: %w", err)
		}
		site.ID = id.SiteID(siteID)
		sites = append(sites, site)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sites: %w", err)
	}
	return sites, nil
}

// AssignedSites returns the IDs of the active sites the employee is
// assigned to through employee_sites.
func (s *Store) AssignedSites(ctx context.Context, employeeID id.EmployeeID) ([]id.SiteID, error) {
	query := `
		SELECT a.site_id
		FROM employee_sites a
		JOIN sites s ON s.id = a.site_id
		WHERE a.employee_id = $1 AND s.active`

	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("query site assignments: %w", err)
	}
	defer rows.Close()

	var assigned []id.SiteID
	for rows.Next() {
		var siteID uuid.UUID
		if err := rows.Scan(&siteID); err != nil {
			return nil, fmt.Errorf("scan site assignment: %w", err)
		}
		assigned = append(assigned, id.SiteID(siteID))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate site assignments: %w", err)
	}
	return assigned, nil
}

// DaySchedule resolves the expected window for the employee on the date,
// nil when no shift covers that weekday.
func (s *Store) DaySchedule(ctx context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Schedule, error) {
	day, err := time.Parse("2006-01-02", string(date))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed attendance date")
	}

	query := `
		SELECT start_minutes, end_minutes, grace_minutes
		FROM shifts
		WHERE employee_id = $1 AND weekday = $2`

	var startMin, endMin, graceMin int
	err = s.db.QueryRowContext(ctx, query, uuid.UUID(employeeID), int(day.Weekday())).
		Scan(&startMin, &endMin, &graceMin)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query shift: %w", err)
	}

	return &attendance.Schedule{
		CheckIn:  day.Add(time.Duration(startMin) * time.Minute),
		CheckOut: day.Add(time.Duration(endMin) * time.Minute),
		Grace:    time.Duration(graceMin) * time.Minute,
	}, nil
}
