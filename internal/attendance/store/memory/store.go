// Package memory provides the in-process attendance store used by tests
// and single-node deployments.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

type dayKey struct {
	employee id.EmployeeID
	date     attendance.Date
}

// Store keeps records and fraud flags in process memory guarded by one
// RWMutex. Returned records are copies; callers never share store state.
type Store struct {
	mu      sync.RWMutex
	byDay   map[dayKey]*attendance.Record
	ordered []*attendance.Record
	flags   []fraud.Flag
}

func NewStore() *Store {
	return &Store{byDay: make(map[dayKey]*attendance.Record)}
}

func (s *Store) Find(_ context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	record, ok := s.byDay[dayKey{employeeID, date}]
	if !ok {
		return nil, nil
	}
	copied := *record
	return &copied, nil
}

func (s *Store) Create(_ context.Context, record *attendance.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := dayKey{record.EmployeeID, record.Date}
	if _, exists := s.byDay[key]; exists {
		return dErrors.Newf(dErrors.CodeConflict, "record already exists for employee %s on %s", record.EmployeeID, record.Date)
	}
	copied := *record
	s.byDay[key] = &copied
	s.ordered = append(s.ordered, &copied)
	return nil
}

func (s *Store) ApplyCheckout(_ context.Context, recordID id.RecordID, checkout attendance.Checkout) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, record := range s.ordered {
		if record.ID != recordID {
			continue
		}
		if record.CheckOutAt != nil {
			return dErrors.New(dErrors.CodeConflict, "record is already checked out")
		}
		at := checkout.At
		record.CheckOutAt = &at
		record.CheckOutConfidence = &checkout.Confidence
		record.CheckOutLiveness = &checkout.Liveness
		record.CheckOutDevice = checkout.Device
		record.CheckOutLocation = checkout.Location
		record.CheckOutDistanceM = checkout.DistanceM
		record.GeoValidated = record.GeoValidated && checkout.GeoValidated
		record.Status = checkout.Status
		return nil
	}
	return dErrors.Newf(dErrors.CodeNotFound, "record %s not found", recordID)
}

func (s *Store) ListSince(_ context.Context, employeeID id.EmployeeID, since time.Time) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendance.Record
	for i := len(s.ordered) - 1; i >= 0; i-- {
		record := s.ordered[i]
		if record.EmployeeID != employeeID {
			continue
		}
		if lastActivity(record).Before(since) {
			continue
		}
		out = append(out, *record)
	}
	return out, nil
}

func (s *Store) CountAccepted(_ context.Context, employeeID id.EmployeeID) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, record := range s.ordered {
		if record.EmployeeID == employeeID {
			count++
		}
	}
	return count, nil
}

func (s *Store) DeviceSeen(_ context.Context, employeeID id.EmployeeID, fingerprint string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, record := range s.ordered {
		if record.EmployeeID != employeeID {
			continue
		}
		if record.CheckInDevice == fingerprint || record.CheckOutDevice == fingerprint {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) AppendFlags(_ context.Context, flags []fraud.Flag) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.flags = append(s.flags, flags...)
	return nil
}

func (s *Store) List(_ context.Context, filter attendance.Filter) ([]attendance.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []attendance.Record
	for i := len(s.ordered) - 1; i >= 0; i-- {
		record := s.ordered[i]
		if filter.From != "" && record.Date < filter.From {
			continue
		}
		if filter.To != "" && record.Date > filter.To {
			continue
		}
		if filter.EmployeeID != nil && record.EmployeeID != *filter.EmployeeID {
			continue
		}
		if filter.Status != nil && record.Status != *filter.Status {
			continue
		}
		out = append(out, *record)
		if filter.Limit > 0 && len(out) == filter.Limit {
			break
		}
	}
	return out, nil
}

// FlagsByEmployee returns the employee's fraud flags, oldest first.
func (s *Store) FlagsByEmployee(_ context.Context, employeeID id.EmployeeID) ([]fraud.Flag, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []fraud.Flag
	for _, flag := range s.flags {
		if flag.EmployeeID == employeeID {
			out = append(out, flag)
		}
	}
	return out, nil
}

// lastActivity is the record's most recent event time.
func lastActivity(record *attendance.Record) time.Time {
	if record.CheckOutAt != nil && record.CheckOutAt.After(record.CheckInAt) {
		return *record.CheckOutAt
	}
	return record.CheckInAt
}
