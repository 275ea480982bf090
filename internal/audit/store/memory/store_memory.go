package memory

import (
	"context"
	"sync"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// InMemoryStore keeps traces per employee plus an ordered log of every
// trace, including ones that never matched an employee.
type InMemoryStore struct {
	mu       sync.RWMutex
	byWorker map[id.EmployeeID][]audit.Trace
	all      []audit.Trace
}

func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{byWorker: make(map[id.EmployeeID][]audit.Trace)}
}

func (s *InMemoryStore) Append(_ context.Context, trace audit.Trace) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append(s.all, trace)
	if !trace.EmployeeID.IsNil() {
		s.byWorker[trace.EmployeeID] = append(s.byWorker[trace.EmployeeID], trace)
	}
	return nil
}

func (s *InMemoryStore) ListByEmployee(_ context.Context, employeeID id.EmployeeID) ([]audit.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]audit.Trace{}, s.byWorker[employeeID]...), nil
}

// ListRecent returns the most recent N traces across all employees.
func (s *InMemoryStore) ListRecent(_ context.Context, limit int) ([]audit.Trace, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	start := len(s.all) - limit
	if start < 0 {
		start = 0
	}
	return append([]audit.Trace{}, s.all[start:]...), nil
}

func (s *InMemoryStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.byWorker = make(map[id.EmployeeID][]audit.Trace)
	s.all = nil
}
