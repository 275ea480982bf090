package attendance

import "time"

// Schedule is the expected working window for an employee on a given date,
// supplied by the external schedule collaborator.
type Schedule struct {
	CheckIn  time.Time
	CheckOut time.Time
	Grace    time.Duration
}

// DeriveCheckInStatus is a pure function from (check-in time, expected
// schedule) to the day status. Arriving exactly at the grace boundary is
// still present; one minute past is late. A nil schedule (no expectation
// for the day) is always present.
//
// Absent is never produced here: it is assigned by the end-of-day close
// process to employees with no record at all.
func DeriveCheckInStatus(checkInAt time.Time, sched *Schedule) Status {
	if sched == nil {
		return StatusPresent
	}
	deadline := sched.CheckIn.Add(sched.Grace)
	if checkInAt.After(deadline) {
		return StatusLate
	}
	return StatusPresent
}

// DeriveCheckOutStatus folds the check-out time into the existing status.
// Leaving before the scheduled check-out marks the day early_leave unless
// the employee was already late (late is the stronger signal and is
// preserved for payroll).
func DeriveCheckOutStatus(current Status, checkOutAt time.Time, sched *Schedule) Status {
	if sched == nil || current == StatusLate {
		return current
	}
	if checkOutAt.Before(sched.CheckOut) {
		return StatusEarlyLeave
	}
	return current
}
