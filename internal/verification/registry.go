package verification

import (
	"sync"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// InFlight tracks which employees currently have a verification attempt
// between identification and decision. The concurrent-session fraud rule
// consumes it: registration happens before the employee lock is requested,
// so an attempt waiting on the lock is still visible to the one holding it.
type InFlight struct {
	mu     sync.Mutex
	active map[id.EmployeeID]int
}

func NewInFlight() *InFlight {
	return &InFlight{active: make(map[id.EmployeeID]int)}
}

// Begin registers the attempt and reports whether another attempt for the
// same employee was already in flight. The returned done must be called
// exactly once when the attempt leaves the pipeline.
func (f *InFlight) Begin(employeeID id.EmployeeID) (concurrent bool, done func()) {
	f.mu.Lock()
	concurrent = f.active[employeeID] > 0
	f.active[employeeID]++
	f.mu.Unlock()

	var once sync.Once
	done = func() {
		once.Do(func() {
			f.mu.Lock()
			f.active[employeeID]--
			if f.active[employeeID] <= 0 {
				delete(f.active, employeeID)
			}
			f.mu.Unlock()
		})
	}
	return concurrent, done
}
