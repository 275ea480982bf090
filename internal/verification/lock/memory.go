package lock

import (
	"context"
	"sync"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Memory is a single-process EmployeeLock backed by a keyed wait map. Each
// held key owns a channel that release closes, waking every waiter to race
// for the slot again.
type Memory struct {
	mu   sync.Mutex
	held map[id.EmployeeID]chan struct{}
}

func NewMemory() *Memory {
	return &Memory{held: make(map[id.EmployeeID]chan struct{})}
}

func (m *Memory) Acquire(ctx context.Context, employeeID id.EmployeeID) (func(), error) {
	for {
		m.mu.Lock()
		holder, taken := m.held[employeeID]
		if !taken {
			ch := make(chan struct{})
			m.held[employeeID] = ch
			m.mu.Unlock()

			var once sync.Once
			release := func() {
				once.Do(func() {
					m.mu.Lock()
					delete(m.held, employeeID)
					m.mu.Unlock()
					close(ch)
				})
			}
			return release, nil
		}
		m.mu.Unlock()

		select {
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeConsistencyViolation, "employee lock wait expired")
		case <-holder:
		}
	}
}
