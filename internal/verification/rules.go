package verification

import (
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
)

// DecisionInput is everything the decision table consumes. Pure data, no
// I/O handles; the service assembles it from the gathered evidence.
type DecisionInput struct {
	// SpoofProbability is the liveness gate's averaged verdict.
	SpoofProbability float64
	// Matched reports whether identification succeeded.
	Matched bool
	// Geo is the geofence result for the attempt coordinate.
	Geo geofence.Result
	// Flags holds every fraud flag raised for the attempt.
	Flags []fraud.Flag
}

// Decide applies the ordered decision table. Checks run in fixed priority:
// liveness, identification, geofence, fraud. The first failing check names
// the outcome; evidence for later checks is still gathered and recorded by
// the caller, the ordering only governs which rejection wins.
//
// This is pure domain logic - no I/O, no side effects.
func Decide(policy Policy, in DecisionInput) ReasonCode {
	// Rule 1: a probable spoof rejects regardless of everything else.
	if in.SpoofProbability > policy.LivenessThreshold {
		return ReasonSpoofSuspected
	}

	// Rule 2: no identification, no attendance.
	if !in.Matched {
		return ReasonFaceNotRecognized
	}

	// Rule 3: geofence. The fence is enforced by deployment policy or by
	// any of the employee's assigned sites. A coordinate that was never
	// evaluated counts as out of range under a required fence;
	// NotApplicable (employee without assigned sites) never rejects.
	fenceRequired := policy.GeofenceRequired || in.Geo.FenceRequired
	if fenceRequired && in.Geo.Verdict != geofence.VerdictNotApplicable && !in.Geo.WithinAnySite {
		return ReasonOutOfRange
	}

	// Rule 4: blocking fraud. Advisory flags annotate; blocking ones
	// reject.
	if BlockingFlag(policy, in.Flags) != nil {
		return ReasonFraudSuspected
	}

	return ReasonAccepted
}

// BlockingFlag returns the first flag severe enough to reject the attempt,
// or nil. Flags are advisory unless policy escalates their kind: a
// concurrent session blocks when BlockConcurrentSession is set; impossible
// travel blocks once the implied speed ratio crosses the policy threshold.
// Device anomalies are always advisory.
func BlockingFlag(policy Policy, flags []fraud.Flag) *fraud.Flag {
	for i := range flags {
		flag := &flags[i]
		switch flag.Kind {
		case fraud.KindConcurrentSession:
			if policy.BlockConcurrentSession {
				return flag
			}
		case fraud.KindImpossibleTravel:
			if flag.Evidence.SpeedRatio > policy.BlockingSpeedRatio {
				return flag
			}
		}
	}
	return nil
}
