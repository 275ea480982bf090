// Package fraud derives advisory fraud flags from a candidate decision and
// the employee's recent attendance history.
//
// Every rule is independent and all of them run on every evaluation; flags
// are evidence for the decision table and the audit trail, not verdicts.
// Whether a flag blocks the current attempt is policy, decided elsewhere.
package fraud

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// Kind identifies a fraud heuristic.
type Kind string

const (
	KindImpossibleTravel  Kind = "impossible_travel"
	KindConcurrentSession Kind = "concurrent_session"
	KindDeviceAnomaly     Kind = "device_anomaly"
)

// Severity grades a flag. Severities are ordered; Rank supports policy
// comparisons without string switches at the call site.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank returns the ordering of a severity (low=1 .. critical=4).
func (s Severity) Rank() int {
	switch s {
	case SeverityLow:
		return 1
	case SeverityMedium:
		return 2
	case SeverityHigh:
		return 3
	case SeverityCritical:
		return 4
	default:
		return 0
	}
}

// Evidence carries the supporting measurements for a flag.
type Evidence struct {
	DistanceKm          float64
	ElapsedMinutes      float64
	ImpliedSpeedKmh     float64
	SpeedRatio          float64
	ConflictingRecordID *id.RecordID
	DeviceFingerprint   string
	PriorRecords        int
}

// Flag is a durable, append-only fraud annotation. Once written it is
// never mutated; new information produces additional flags.
type Flag struct {
	ID         id.FlagID
	EmployeeID id.EmployeeID
	Kind       Kind
	Severity   Severity
	Evidence   Evidence
	CreatedAt  time.Time
}

// Input is everything the evaluator needs about the attempt under decision.
type Input struct {
	EmployeeID id.EmployeeID
	At         time.Time
	// Coordinate is the attempt's validated claim; nil disables the
	// impossible-travel rule for this attempt.
	Coordinate        *geofence.Coordinate
	DeviceFingerprint string
	// ConcurrentInFlight reports whether another verification for the
	// same employee was in flight when this one started.
	ConcurrentInFlight bool
	// History holds the employee's recent accepted records, newest first.
	History []attendance.Record
	// PriorRecordCount is the employee's all-time accepted record count.
	PriorRecordCount int
	// DeviceSeen reports whether the fingerprint appears in the
	// employee's history.
	DeviceSeen bool
}

// Evaluator applies the fraud heuristics with deployment-tuned thresholds.
type Evaluator struct {
	maxSpeedKmh      float64
	lookback         time.Duration
	deviceHistoryMin int
}

// New constructs an Evaluator. maxSpeedKmh is the fastest plausible travel
// between two location-attributed events; lookback bounds how far back the
// travel rule compares; deviceHistoryMin is the record count below which an
// unseen device is considered normal churn.
func New(maxSpeedKmh float64, lookback time.Duration, deviceHistoryMin int) *Evaluator {
	if maxSpeedKmh <= 0 {
		maxSpeedKmh = 80
	}
	if lookback <= 0 {
		lookback = time.Hour
	}
	return &Evaluator{
		maxSpeedKmh:      maxSpeedKmh,
		lookback:         lookback,
		deviceHistoryMin: deviceHistoryMin,
	}
}

// Evaluate runs every rule and returns the flags raised. Rules never
// short-circuit each other.
func (e *Evaluator) Evaluate(in Input) []Flag {
	var flags []Flag
	if flag := e.impossibleTravel(in); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := e.concurrentSession(in); flag != nil {
		flags = append(flags, *flag)
	}
	if flag := e.deviceAnomaly(in); flag != nil {
		flags = append(flags, *flag)
	}
	return flags
}

// impossibleTravel compares the attempt's coordinate against the employee's
// most recent location-attributed event inside the lookback window and
// flags when the implied speed exceeds the plausible maximum. Severity
// scales with the speed excess.
func (e *Evaluator) impossibleTravel(in Input) *Flag {
	if in.Coordinate == nil {
		return nil
	}

	prevAt, prevLoc, prevRecord := lastLocatedEvent(in.History, in.At)
	if prevLoc == nil || in.At.Sub(prevAt) > e.lookback {
		return nil
	}

	distanceKm := geofence.Distance(*in.Coordinate, *prevLoc) / 1000
	elapsedMinutes := in.At.Sub(prevAt).Minutes()
	if elapsedMinutes < 1 {
		elapsedMinutes = 1
	}
	impliedSpeed := distanceKm / elapsedMinutes * 60
	ratio := impliedSpeed / e.maxSpeedKmh
	if ratio <= 1 {
		return nil
	}

	return &Flag{
		ID:         id.NewFlagID(),
		EmployeeID: in.EmployeeID,
		Kind:       KindImpossibleTravel,
		Severity:   travelSeverity(ratio),
		Evidence: Evidence{
			DistanceKm:          distanceKm,
			ElapsedMinutes:      elapsedMinutes,
			ImpliedSpeedKmh:     impliedSpeed,
			SpeedRatio:          ratio,
			ConflictingRecordID: prevRecord,
		},
		CreatedAt: in.At,
	}
}

func travelSeverity(ratio float64) Severity {
	switch {
	case ratio > 3:
		return SeverityCritical
	case ratio > 2:
		return SeverityHigh
	case ratio > 1.5:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// concurrentSession flags any attempt that observed another in-flight
// verification for the same employee, regardless of either outcome. This is
// the primary defense for the pre-match race window where the employee lock
// cannot yet be held.
func (e *Evaluator) concurrentSession(in Input) *Flag {
	if !in.ConcurrentInFlight {
		return nil
	}
	return &Flag{
		ID:         id.NewFlagID(),
		EmployeeID: in.EmployeeID,
		Kind:       KindConcurrentSession,
		Severity:   SeverityCritical,
		Evidence: Evidence{
			DeviceFingerprint: in.DeviceFingerprint,
		},
		CreatedAt: in.At,
	}
}

// deviceAnomaly raises a low-severity, informational flag when a device
// never seen for this employee shows up after an established history.
func (e *Evaluator) deviceAnomaly(in Input) *Flag {
	if in.DeviceFingerprint == "" || in.DeviceSeen {
		return nil
	}
	if in.PriorRecordCount < e.deviceHistoryMin {
		return nil
	}
	return &Flag{
		ID:         id.NewFlagID(),
		EmployeeID: in.EmployeeID,
		Kind:       KindDeviceAnomaly,
		Severity:   SeverityLow,
		Evidence: Evidence{
			DeviceFingerprint: in.DeviceFingerprint,
			PriorRecords:      in.PriorRecordCount,
		},
		CreatedAt: in.At,
	}
}

// lastLocatedEvent returns the newest event before the attempt that carries
// a coordinate: a check-out when present, otherwise the check-in.
func lastLocatedEvent(history []attendance.Record, before time.Time) (time.Time, *geofence.Coordinate, *id.RecordID) {
	var (
		bestAt  time.Time
		bestLoc *geofence.Coordinate
		bestID  *id.RecordID
	)
	for i := range history {
		record := &history[i]
		if record.CheckOutAt != nil && record.CheckOutLocation != nil &&
			record.CheckOutAt.Before(before) && record.CheckOutAt.After(bestAt) {
			bestAt = *record.CheckOutAt
			bestLoc = record.CheckOutLocation
			bestID = &record.ID
		}
		if record.CheckInLocation != nil &&
			record.CheckInAt.Before(before) && record.CheckInAt.After(bestAt) {
			bestAt = record.CheckInAt
			bestLoc = record.CheckInLocation
			bestID = &record.ID
		}
	}
	return bestAt, bestLoc, bestID
}
