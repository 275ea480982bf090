package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// Store implements audit.Store on PostgreSQL. Each trace is one row in
// verification_traces; the per-stage scores travel as a JSONB payload so
// adding a stage does not require a migration.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// scoresPayload is the JSONB column holding the per-stage evidence.
type scoresPayload struct {
	StepsRun         []audit.Step `json:"steps_run"`
	SpoofProbability *float64     `json:"spoof_probability,omitempty"`
	MatchConfidence  *float64     `json:"match_confidence,omitempty"`
	GeoVerdict       string       `json:"geo_verdict,omitempty"`
	WithinSite       *bool        `json:"within_site,omitempty"`
	DistanceMeters   *float64     `json:"distance_meters,omitempty"`
	FraudFlags       []string     `json:"fraud_flags,omitempty"`
}

// Append inserts a trace. Idempotent on attempt ID via ON CONFLICT DO
// NOTHING so a retried append never duplicates a row.
func (s *Store) Append(ctx context.Context, trace audit.Trace) error {
	payload, err := json.Marshal(scoresPayload{
		StepsRun:         trace.StepsRun,
		SpoofProbability: trace.SpoofProbability,
		MatchConfidence:  trace.MatchConfidence,
		GeoVerdict:       trace.GeoVerdict,
		WithinSite:       trace.WithinSite,
		DistanceMeters:   trace.DistanceMeters,
		FraudFlags:       trace.FraudFlags,
	})
	if err != nil {
		return fmt.Errorf("marshal trace scores: %w", err)
	}

	var employeeID *uuid.UUID
	if !trace.EmployeeID.IsNil() {
		eid := uuid.UUID(trace.EmployeeID)
		employeeID = &eid
	}

	query := `
		INSERT INTO verification_traces (
			id, direction, employee_id, device_id, request_id, client_ip,
			user_agent, started_at, completed_at, outcome, accepted, scores
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (id) DO NOTHING
	`
	_, err = s.db.ExecContext(ctx, query,
		uuid.UUID(trace.AttemptID),
		trace.Direction,
		employeeID,
		trace.DeviceID,
		trace.RequestID,
		trace.ClientIP,
		trace.UserAgent,
		trace.StartedAt,
		trace.CompletedAt,
		trace.Outcome,
		trace.Accepted,
		payload,
	)
	if err != nil {
		return fmt.Errorf("insert verification trace: %w", err)
	}
	return nil
}

// ListByEmployee returns traces for one employee, most recent first.
func (s *Store) ListByEmployee(ctx context.Context, employeeID id.EmployeeID) ([]audit.Trace, error) {
	query := `
		SELECT id, direction, employee_id, device_id, request_id, client_ip,
			   user_agent, started_at, completed_at, outcome, accepted, scores
		FROM verification_traces
		WHERE employee_id = $1
		ORDER BY started_at DESC
	`
	rows, err := s.db.QueryContext(ctx, query, uuid.UUID(employeeID))
	if err != nil {
		return nil, fmt.Errorf("query verification traces: %w", err)
	}
	defer rows.Close()

	return s.scanTraces(rows)
}

// ListRecent returns the N most recent traces across all employees.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]audit.Trace, error) {
	query := `
		SELECT id, direction, employee_id, device_id, request_id, client_ip,
			   user_agent, started_at, completed_at, outcome, accepted, scores
		FROM verification_traces
		ORDER BY started_at DESC
		LIMIT $1
	`
	rows, err := s.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query verification traces: %w", err)
	}
	defer rows.Close()

	return s.scanTraces(rows)
}

func (s *Store) scanTraces(rows *sql.Rows) ([]audit.Trace, error) {
	var traces []audit.Trace

	for rows.Next() {
		var (
			trace      audit.Trace
			attemptID  uuid.UUID
			employeeID *uuid.UUID
			payload    []byte
		)

		err := rows.Scan(
			&attemptID,
			&trace.Direction,
			&employeeID,
			&trace.DeviceID,
			&trace.RequestID,
			&trace.ClientIP,
			&trace.UserAgent,
			&trace.StartedAt,
			&trace.CompletedAt,
			&trace.Outcome,
			&trace.Accepted,
			&payload,
		)
		if err != nil {
			return nil, fmt.Errorf("scan verification trace: %w", err)
		}

		trace.AttemptID = id.AttemptID(attemptID)
		if employeeID != nil {
			trace.EmployeeID = id.EmployeeID(*employeeID)
		}

		var scores scoresPayload
		if err := json.Unmarshal(payload, &scores); err != nil {
			return nil, fmt.Errorf("unmarshal trace scores: %w", err)
		}
		trace.StepsRun = scores.StepsRun
		trace.SpoofProbability = scores.SpoofProbability
		trace.MatchConfidence = scores.MatchConfidence
		trace.GeoVerdict = scores.GeoVerdict
		trace.WithinSite = scores.WithinSite
		trace.DistanceMeters = scores.DistanceMeters
		trace.FraudFlags = scores.FraudFlags

		traces = append(traces, trace)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate verification traces: %w", err)
	}
	return traces, nil
}
