// Package roster is the read side of the enrollment data the engine
// consumes: employees with their face templates, active sites, and
// expected working shifts. Enrollment and administration happen outside
// the engine; this package only reads.
package roster

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// Employee is an enrolled worker. Only active employees with at least one
// template are eligible identification candidates. Sites lists the sites
// the employee is assigned to work at; an employee without assignments is
// not geofenced.
type Employee struct {
	ID        id.EmployeeID
	FullName  string
	Active    bool
	Templates []facematch.Template
	Sites     []id.SiteID
}

// Shift is an employee's expected working window on the weekdays it
// covers. Start and End are offsets from midnight of the attendance date.
type Shift struct {
	EmployeeID id.EmployeeID
	Weekdays   map[time.Weekday]bool
	Start      time.Duration
	End        time.Duration
	Grace      time.Duration
}

// Covers reports whether the shift applies on the given weekday.
func (s Shift) Covers(day time.Weekday) bool {
	return s.Weekdays[day]
}
