// Package lock serializes verification attempts per employee. The lock is
// acquired after identification (the employee is unknown before the match)
// and held through the decision and any record write.
package lock

import (
	"context"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// EmployeeLock grants exclusive access to one employee's attendance state.
// Acquire blocks until the lock is granted or ctx expires; the returned
// release must be called exactly once on every exit path.
type EmployeeLock interface {
	Acquire(ctx context.Context, employeeID id.EmployeeID) (release func(), err error)
}
