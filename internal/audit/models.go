// Package audit records every verification attempt for forensic review.
//
// A trace is written for each attempt regardless of outcome, carrying the
// attempt metadata and every intermediate score that was computed before
// the decision. Traces are append-only and independent of whether an
// attendance record was produced.
package audit

import (
	"time"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

// Step names a pipeline stage recorded as having run.
type Step string

const (
	StepLiveness Step = "liveness"
	StepMatch    Step = "match"
	StepGeofence Step = "geofence"
	StepFraud    Step = "fraud"
	StepDecision Step = "decision"
)

// Trace is the durable forensic record of one verification attempt.
type Trace struct {
	AttemptID id.AttemptID
	// Direction is "check_in" or "check_out".
	Direction string
	// EmployeeID is zero until the matcher identified someone.
	EmployeeID id.EmployeeID
	DeviceID   string
	RequestID  string
	ClientIP   string
	UserAgent  string
	StartedAt  time.Time

	// StepsRun lists which stages executed, in order, even when a later
	// stage rejected the attempt.
	StepsRun []Step

	// Partial scores; nil when the owning stage never ran.
	SpoofProbability *float64
	MatchConfidence  *float64
	GeoVerdict       string
	WithinSite       *bool
	DistanceMeters   *float64
	FraudFlags       []string

	// Outcome is the stable reason code of the decision.
	Outcome     string
	Accepted    bool
	CompletedAt time.Time
}
