// Package attendance owns the durable entities the verification engine
// writes: attendance records and their day-status derivation.
package attendance

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// Status classifies a day's attendance against the expected schedule.
type Status string

const (
	StatusPresent    Status = "present"
	StatusLate       Status = "late"
	StatusAbsent     Status = "absent"
	StatusEarlyLeave Status = "early_leave"
)

// Date is a calendar date in "2006-01-02" form. Records are unique per
// (employee, date).
type Date string

// DateOf truncates a timestamp to its calendar date.
func DateOf(t time.Time) Date {
	return Date(t.Format("2006-01-02"))
}

// Record is the durable result of a successful verification. A check-in
// creates it; a later check-out on the same date mutates the check-out
// fields of the same record. The engine never deletes records.
type Record struct {
	ID         id.RecordID
	EmployeeID id.EmployeeID
	Date       Date
	Status     Status

	CheckInAt         time.Time
	CheckInConfidence float64
	CheckInLiveness   float64
	CheckInDevice     string
	CheckInLocation   *geofence.Coordinate
	CheckInDistanceM  *float64

	CheckOutAt         *time.Time
	CheckOutConfidence *float64
	CheckOutLiveness   *float64
	CheckOutDevice     string
	CheckOutLocation   *geofence.Coordinate
	CheckOutDistanceM  *float64

	// GeoValidated is true only when every geo-evaluated leg of the day
	// was inside a site radius. A failed check-out validation downgrades
	// a validated check-in.
	GeoValidated bool

	CreatedAt time.Time
}

// Open reports whether the record has a check-in but no check-out yet.
func (r *Record) Open() bool {
	return !r.CheckInAt.IsZero() && r.CheckOutAt == nil
}

// Filter narrows record listings. Zero values mean no constraint.
type Filter struct {
	From       Date
	To         Date
	EmployeeID *id.EmployeeID
	Status     *Status
	Limit      int
}

// Checkout captures the mutation a successful check-out applies.
type Checkout struct {
	At         time.Time
	Confidence float64
	Liveness   float64
	Device     string
	Location   *geofence.Coordinate
	DistanceM  *float64
	// GeoValidated is the check-out leg's own verdict; the store ANDs it
	// into the record's flag.
	GeoValidated bool
	Status       Status
}
