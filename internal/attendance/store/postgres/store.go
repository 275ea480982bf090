// Package postgres persists attendance records and fraud flags in
// PostgreSQL. The attendance_records table carries a unique
// (employee_id, record_date) constraint; the store maps its violation to a
// conflict error so the service can report a repeat check-in.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/platform/tx"
)

const uniqueViolation = "23505"

type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// q returns the context transaction when one is present so callers can
// group store operations atomically.
func (s *Store) q(ctx context.Context) querier {
	if current, ok := tx.From(ctx); ok {
		return current
	}
	return s.db
}

const recordColumns = `
	id, employee_id, record_date, status,
	check_in_at, check_in_confidence, check_in_liveness, check_in_device,
	check_in_lat, check_in_lng, check_in_distance_m,
	check_out_at, check_out_confidence, check_out_liveness, check_out_device,
	check_out_lat, check_out_lng, check_out_distance_m,
	geo_validated, created_at
`

func (s *Store) Find(ctx context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1 AND record_date = $2`

	row := s.q(ctx).QueryRowContext(ctx, query, uuid.UUID(employeeID), string(date))
	record, err := scanRecord(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find attendance record: %w", err)
	}
	return record, nil
}

func (s *Store) Create(ctx context.Context, record *attendance.Record) error {
	query := `
		INSERT INTO attendance_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11,
			$12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	var lat, lng *float64
	if record.CheckInLocation != nil {
		lat = &record.CheckInLocation.Latitude
		lng = &record.CheckInLocation.Longitude
	}

	_, err := s.q(ctx).ExecContext(ctx, query,
		uuid.UUID(record.ID),
		uuid.UUID(record.EmployeeID),
		string(record.Date),
		string(record.Status),
		record.CheckInAt,
		record.CheckInConfidence,
		record.CheckInLiveness,
		record.CheckInDevice,
		lat,
		lng,
		record.CheckInDistanceM,
		nil, nil, nil, "", nil, nil, nil,
		record.GeoValidated,
		record.CreatedAt,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return dErrors.Newf(dErrors.CodeConflict, "record already exists for employee %s on %s", record.EmployeeID, record.Date)
		}
		return fmt.Errorf("insert attendance record: %w", err)
	}
	return nil
}

func (s *Store) ApplyCheckout(ctx context.Context, recordID id.RecordID, checkout attendance.Checkout) error {
	query := `
		UPDATE attendance_records SET
			check_out_at = $2,
			check_out_confidence = $3,
			check_out_liveness = $4,
			check_out_device = $5,
			check_out_lat = $6,
			check_out_lng = $7,
			check_out_distance_m = $8,
			geo_validated = geo_validated AND $9,
			status = $10
		WHERE id = $1 AND check_out_at IS NULL
	`
	var lat, lng *float64
	if checkout.Location != nil {
		lat = &checkout.Location.Latitude
		lng = &checkout.Location.Longitude
	}

	result, err := s.q(ctx).ExecContext(ctx, query,
		uuid.UUID(recordID),
		checkout.At,
		checkout.Confidence,
		checkout.Liveness,
		checkout.Device,
		lat,
		lng,
		checkout.DistanceM,
		checkout.GeoValidated,
		string(checkout.Status),
	)
	if err != nil {
		return fmt.Errorf("apply checkout: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("apply checkout: %w", err)
	}
	if affected == 0 {
		return dErrors.Newf(dErrors.CodeConflict, "record %s is missing or already checked out", recordID)
	}
	return nil
}

func (s *Store) ListSince(ctx context.Context, employeeID id.EmployeeID, since time.Time) ([]attendance.Record, error) {
	query := `SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE employee_id = $1
		  AND GREATEST(check_in_at, COALESCE(check_out_at, check_in_at)) >= $2
		ORDER BY check_in_at DESC`

	rows, err := s.q(ctx).QueryContext(ctx, query, uuid.UUID(employeeID), since)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

func (s *Store) CountAccepted(ctx context.Context, employeeID id.EmployeeID) (int, error) {
	var count int
	err := s.q(ctx).QueryRowContext(ctx,
		`SELECT COUNT(*) FROM attendance_records WHERE employee_id = $1`,
		uuid.UUID(employeeID),
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count attendance records: %w", err)
	}
	return count, nil
}

func (s *Store) DeviceSeen(ctx context.Context, employeeID id.EmployeeID, fingerprint string) (bool, error) {
	var seen bool
	err := s.q(ctx).QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM attendance_records
			WHERE employee_id = $1
			  AND (check_in_device = $2 OR check_out_device = $2)
		)`,
		uuid.UUID(employeeID), fingerprint,
	).Scan(&seen)
	if err != nil {
		return false, fmt.Errorf("check device fingerprint: %w", err)
	}
	return seen, nil
}

// AppendFlags inserts the batch atomically: when the context carries no
// transaction, one is opened so a partial batch never persists.
func (s *Store) AppendFlags(ctx context.Context, flags []fraud.Flag) error {
	if len(flags) == 0 {
		return nil
	}

	if _, ok := tx.From(ctx); !ok {
		batch, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin fraud flag batch: %w", err)
		}
		defer batch.Rollback()

		if err := s.AppendFlags(tx.WithTx(ctx, batch), flags); err != nil {
			return err
		}
		return batch.Commit()
	}

	for _, flag := range flags {
		evidence, err := json.Marshal(flag.Evidence)
		if err != nil {
			return fmt.Errorf("marshal flag evidence: %w", err)
		}
		_, err = s.q(ctx).ExecContext(ctx, `
			INSERT INTO fraud_flags (id, employee_id, kind, severity, evidence, created_at)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO NOTHING`,
			uuid.UUID(flag.ID),
			uuid.UUID(flag.EmployeeID),
			string(flag.Kind),
			string(flag.Severity),
			evidence,
			flag.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert fraud flag: %w", err)
		}
	}
	return nil
}

func (s *Store) List(ctx context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	query := `SELECT ` + recordColumns + ` FROM attendance_records WHERE 1=1`
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.From != "" {
		query += ` AND record_date >= ` + arg(string(filter.From))
	}
	if filter.To != "" {
		query += ` AND record_date <= ` + arg(string(filter.To))
	}
	if filter.EmployeeID != nil {
		query += ` AND employee_id = ` + arg(uuid.UUID(*filter.EmployeeID))
	}
	if filter.Status != nil {
		query += ` AND status = ` + arg(string(*filter.Status))
	}
	query += ` ORDER BY check_in_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + arg(filter.Limit)
	}

	rows, err := s.q(ctx).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attendance records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*attendance.Record, error) {
	var (
		record               attendance.Record
		recordID, employeeID uuid.UUID
		date, status         string
		inLat, inLng         *float64
		outLat, outLng       *float64
	)
	err := row.Scan(
		&recordID,
		&employeeID,
		&date,
		&status,
		&record.CheckInAt,
		&record.CheckInConfidence,
		&record.CheckInLiveness,
		&record.CheckInDevice,
		&inLat,
		&inLng,
		&record.CheckInDistanceM,
		&record.CheckOutAt,
		&record.CheckOutConfidence,
		&record.CheckOutLiveness,
		&record.CheckOutDevice,
		&outLat,
		&outLng,
		&record.CheckOutDistanceM,
		&record.GeoValidated,
		&record.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.ID = id.RecordID(recordID)
	record.EmployeeID = id.EmployeeID(employeeID)
	record.Date = attendance.Date(date)
	record.Status = attendance.Status(status)
	if inLat != nil && inLng != nil {
		record.CheckInLocation = &geofence.Coordinate{Latitude: *inLat, Longitude: *inLng}
	}
	if outLat != nil && outLng != nil {
		record.CheckOutLocation = &geofence.Coordinate{Latitude: *outLat, Longitude: *outLng}
	}
	return &record, nil
}

func scanRecords(rows *sql.Rows) ([]attendance.Record, error) {
	var records []attendance.Record
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan attendance record: %w", err)
		}
		records = append(records, *record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate attendance records: %w", err)
	}
	return records, nil
}
