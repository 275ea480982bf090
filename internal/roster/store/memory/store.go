// Package memory is an in-memory roster for tests and single-node
// deployments seeded at startup.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	"github.com/rortizs/biometria-Sasvin/internal/roster"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Store holds the roster in memory. Seed it with AddEmployee, AddSite and
// SetShift before serving traffic; reads are safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	employees map[id.EmployeeID]roster.Employee
	sites     []geofence.Site
	shifts    map[id.EmployeeID]roster.Shift
}

// NewStore creates an empty roster store.
func NewStore() *Store {
	return &Store{
		employees: make(map[id.EmployeeID]roster.Employee),
		shifts:    make(map[id.EmployeeID]roster.Shift),
	}
}

// AddEmployee registers or replaces an employee.
func (s *Store) AddEmployee(employee roster.Employee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.employees[employee.ID] = employee
}

// AddSite registers a site. Inactive sites are simply not added.
func (s *Store) AddSite(site geofence.Site) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sites = append(s.sites, site)
}

// SetShift sets an employee's expected shift, replacing any previous one.
func (s *Store) SetShift(shift roster.Shift) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shifts[shift.EmployeeID] = shift
}

// ListCandidates returns the identification candidates: active employees
// with at least one enrolled template.
func (s *Store) ListCandidates(ctx context.Context) ([]facematch.Candidate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	candidates := make([]facematch.Candidate, 0, len(s.employees))
	for _, employee := range s.employees {
		if !employee.Active || len(employee.Templates) == 0 {
			continue
		}
		candidates = append(candidates, facematch.Candidate{
			EmployeeID: employee.ID,
			Templates:  append([]facematch.Template(nil), employee.Templates...),
		})
	}
	return candidates, nil
}

// ActiveSites returns all registered sites.
func (s *Store) ActiveSites(ctx context.Context) ([]geofence.Site, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]geofence.Site(nil), s.sites...), nil
}

// AssignedSites returns the employee's assigned site IDs.
func (s *Store) AssignedSites(ctx context.Context, employeeID id.EmployeeID) ([]id.SiteID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	employee, ok := s.employees[employeeID]
	if !ok {
		return nil, nil
	}
	return append([]id.SiteID(nil), employee.Sites...), nil
}

// DaySchedule resolves the employee's expected window for the date, nil
// when no shift covers that weekday.
func (s *Store) DaySchedule(ctx context.Context, employeeID id.EmployeeID, date attendance.Date) (*attendance.Schedule, error) {
	s.mu.RLock()
	shift, ok := s.shifts[employeeID]
	s.mu.RUnlock()
	if !ok {
		return nil, nil
	}

	day, err := time.Parse("2006-01-02", string(date))
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInvalidInput, "malformed attendance date")
	}
	if !shift.Covers(day.Weekday()) {
		return nil, nil
	}

	return &attendance.Schedule{
		CheckIn:  day.Add(shift.Start),
		CheckOut: day.Add(shift.End),
		Grace:    shift.Grace,
	}, nil
}
