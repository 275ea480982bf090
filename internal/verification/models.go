// Package verification orchestrates the attendance decision pipeline:
// liveness, identification, geofence, fraud signals, and the final ordered
// decision, with one attendance record write per accepted attempt.
package verification

import (
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Direction distinguishes the two verification operations.
type Direction string

const (
	DirectionCheckIn  Direction = "check_in"
	DirectionCheckOut Direction = "check_out"
)

// ParseDirection validates a wire direction value.
func ParseDirection(raw string) (Direction, error) {
	switch Direction(raw) {
	case DirectionCheckIn, DirectionCheckOut:
		return Direction(raw), nil
	default:
		return "", dErrors.Newf(dErrors.CodeInvalidInput, "unknown direction %q", raw)
	}
}

// ReasonCode is the stable outcome identifier on every decision. Codes are
// wire-visible and audit-persisted; never renumber or rename.
type ReasonCode string

const (
	ReasonAccepted           ReasonCode = "ACCEPTED"
	ReasonSpoofSuspected     ReasonCode = "SPOOF_SUSPECTED"
	ReasonFaceNotRecognized  ReasonCode = "FACE_NOT_RECOGNIZED"
	ReasonOutOfRange         ReasonCode = "OUT_OF_RANGE"
	ReasonFraudSuspected     ReasonCode = "FRAUD_SUSPECTED"
	ReasonNoOpenCheckIn      ReasonCode = "NO_OPEN_CHECKIN"
	ReasonAlreadyCheckedIn   ReasonCode = "ALREADY_CHECKED_IN"
	ReasonAlreadyCheckedOut  ReasonCode = "ALREADY_CHECKED_OUT"
	ReasonServiceUnavailable ReasonCode = "SERVICE_UNAVAILABLE"
	ReasonInvalidInput       ReasonCode = "INVALID_INPUT"
	ReasonLockTimeout        ReasonCode = "LOCK_TIMEOUT"
)

// Attempt is one verification request after transport decoding. Frames are
// raw encoded images in capture order.
type Attempt struct {
	ID                id.AttemptID
	Direction         Direction
	Frames            [][]byte
	Coordinate        *geofence.Coordinate
	DeviceFingerprint string
	At                time.Time
}

// Policy carries the decision-level thresholds. Stage-level thresholds
// (liveness frames, match margin, fraud speeds) are configured on the
// stage components themselves.
type Policy struct {
	// LivenessThreshold is the maximum acceptable spoof probability.
	LivenessThreshold float64
	// GeofenceRequired rejects attempts outside every assigned site
	// radius even when no assigned site demands the fence itself.
	GeofenceRequired bool
	// BlockingSpeedRatio is the impossible-travel speed ratio at which
	// the flag blocks the attempt instead of annotating it.
	BlockingSpeedRatio float64
	// BlockConcurrentSession escalates the concurrent-session flag from
	// advisory to blocking.
	BlockConcurrentSession bool
	// TravelLookback bounds the history window fetched for the
	// impossible-travel rule.
	TravelLookback time.Duration
	// ScorerTimeout bounds each external scoring or embedding call.
	ScorerTimeout time.Duration
	// LockWait bounds the wait for the per-employee lock.
	LockWait time.Duration
}

// Result is the decision returned to the kiosk. A rejected attempt is a
// normal Result, not an error; errors are reserved for infrastructure
// failures.
type Result struct {
	AttemptID id.AttemptID
	Direction Direction
	Outcome   ReasonCode
	Accepted  bool

	// EmployeeID is set once identification succeeded, including on
	// later-stage rejections.
	EmployeeID id.EmployeeID
	RecordID   *id.RecordID
	Status     attendance.Status

	SpoofProbability *float64
	MatchConfidence  *float64
	WithinSite       *bool
	DistanceMeters   *float64
	FraudFlags       []fraud.Flag

	DecidedAt time.Time
}
