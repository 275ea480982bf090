package verification

import (
	"context"
	"log/slog"
	"time"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/audit"
	"github.com/rortizs/biometria-Sasvin/internal/facematch"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	"github.com/rortizs/biometria-Sasvin/internal/liveness"
	"github.com/rortizs/biometria-Sasvin/internal/verification/lock"
	"github.com/rortizs/biometria-Sasvin/internal/verification/metrics"
	"github.com/rortizs/biometria-Sasvin/internal/verification/ports"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/requestcontext"
)

// Service runs the verification pipeline end to end. The pipeline is
// forward-only: once a stage has recorded its evidence, a later failure
// never erases it from the trace.
type Service struct {
	gate     *liveness.Gate
	matcher  *facematch.Matcher
	fraud    *fraud.Evaluator
	embedder ports.EmbedderPort
	roster   ports.RosterPort
	records  ports.RecordsPort
	locks    lock.EmployeeLock
	inflight *InFlight
	audit    ports.AuditPort
	policy   Policy
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// Option configures optional service collaborators.
type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService validates the required collaborators and builds the service.
func NewService(
	gate *liveness.Gate,
	matcher *facematch.Matcher,
	fraudEval *fraud.Evaluator,
	embedder ports.EmbedderPort,
	roster ports.RosterPort,
	records ports.RecordsPort,
	locks lock.EmployeeLock,
	auditSink ports.AuditPort,
	policy Policy,
	opts ...Option,
) (*Service, error) {
	if gate == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "liveness gate is required")
	}
	if matcher == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "face matcher is required")
	}
	if fraudEval == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "fraud evaluator is required")
	}
	if embedder == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "embedder port is required")
	}
	if roster == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "roster port is required")
	}
	if records == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "records port is required")
	}
	if locks == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "employee lock is required")
	}
	if auditSink == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "audit port is required")
	}

	s := &Service{
		gate:     gate,
		matcher:  matcher,
		fraud:    fraudEval,
		embedder: embedder,
		roster:   roster,
		records:  records,
		locks:    locks,
		inflight: NewInFlight(),
		audit:    auditSink,
		policy:   policy,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CheckIn verifies a check-in attempt.
func (s *Service) CheckIn(ctx context.Context, attempt Attempt) (*Result, error) {
	attempt.Direction = DirectionCheckIn
	return s.verify(ctx, attempt)
}

// CheckOut verifies a check-out attempt.
func (s *Service) CheckOut(ctx context.Context, attempt Attempt) (*Result, error) {
	attempt.Direction = DirectionCheckOut
	return s.verify(ctx, attempt)
}

// verify is the single pipeline both operations share. Rejections are
// returned as Results; an error means infrastructure failed and nothing
// about the attempt could be decided.
func (s *Service) verify(ctx context.Context, attempt Attempt) (*Result, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveVerifyLatency(time.Since(start)) }()

	if len(attempt.Frames) == 0 {
		// Pre-scoring input validation: no trace is written for
		// requests that never reached the pipeline.
		return nil, dErrors.New(dErrors.CodeInvalidInput, "at least one probe frame is required")
	}
	if attempt.ID.IsNil() {
		attempt.ID = id.NewAttemptID()
	}
	if attempt.At.IsZero() {
		attempt.At = requestcontext.Now(ctx)
	}

	trace := audit.Trace{
		AttemptID: attempt.ID,
		Direction: string(attempt.Direction),
		DeviceID:  requestcontext.DeviceID(ctx),
		RequestID: requestcontext.RequestID(ctx),
		ClientIP:  requestcontext.ClientIP(ctx),
		UserAgent: requestcontext.UserAgent(ctx),
		StartedAt: attempt.At,
	}

	evidence, err := s.gatherEvidence(ctx, attempt)
	if err != nil {
		if dErrors.HasCode(err, dErrors.CodeInvalidInput) {
			// Undecodable or too few frames: same pre-scoring
			// contract as an empty probe.
			return nil, err
		}
		trace.StepsRun = append(trace.StepsRun, audit.StepLiveness)
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "evidence gathering failed")
	}

	spoof := evidence.liveness.SpoofProbability
	trace.StepsRun = append(trace.StepsRun, audit.StepLiveness, audit.StepGeofence)
	trace.SpoofProbability = &spoof

	// Before identification only the survey exists: record the distance
	// to the nearest active site, whoever the probe turns out to be.
	if evidence.survey.Evaluated {
		trace.GeoVerdict = string(geofence.VerdictEvaluated)
		if _, nearest, ok := evidence.survey.Nearest(); ok {
			trace.DistanceMeters = &nearest
		}
	} else {
		trace.GeoVerdict = string(geofence.VerdictNotEvaluated)
	}

	result := &Result{
		AttemptID:        attempt.ID,
		Direction:        attempt.Direction,
		SpoofProbability: &spoof,
		DistanceMeters:   trace.DistanceMeters,
	}

	// Spoofed probes never reach the matcher.
	if spoof > s.policy.LivenessThreshold {
		return s.decide(ctx, trace, result, Decide(s.policy, DecisionInput{SpoofProbability: spoof})), nil
	}

	match, matched, err := s.identify(ctx, attempt, evidence)
	if err != nil {
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, err
	}
	trace.StepsRun = append(trace.StepsRun, audit.StepMatch)
	if !matched {
		return s.decide(ctx, trace, result, Decide(s.policy, DecisionInput{SpoofProbability: spoof})), nil
	}

	trace.EmployeeID = match.EmployeeID
	trace.MatchConfidence = &match.Confidence
	result.EmployeeID = match.EmployeeID
	result.MatchConfidence = &match.Confidence

	// The geofence verdict is per-employee: the survey's distances are
	// resolved against the matched employee's assigned sites.
	assigned, err := s.roster.AssignedSites(ctx, match.EmployeeID)
	if err != nil {
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "site assignment lookup failed")
	}
	geo := evidence.survey.Resolve(assigned)
	trace.GeoVerdict = string(geo.Verdict)
	if geo.Verdict == geofence.VerdictEvaluated {
		within := geo.WithinAnySite
		distance := geo.DistanceMeters
		trace.WithinSite = &within
		trace.DistanceMeters = &distance
		result.WithinSite = trace.WithinSite
		result.DistanceMeters = trace.DistanceMeters
	}

	// Register in flight before requesting the lock so an attempt
	// waiting on the lock is visible to the holder's fraud evaluation.
	concurrent, done := s.inflight.Begin(match.EmployeeID)
	defer done()

	lockCtx, cancel := context.WithTimeout(ctx, s.policy.LockWait)
	lockStart := time.Now()
	release, err := s.locks.Acquire(lockCtx, match.EmployeeID)
	cancel()
	s.metrics.ObserveLockWait(time.Since(lockStart))
	if err != nil {
		outcome := ReasonServiceUnavailable
		if dErrors.HasCode(err, dErrors.CodeConsistencyViolation) {
			outcome = ReasonLockTimeout
			s.metrics.IncrementLockTimeout()
		}
		s.writeTrace(ctx, trace, outcome, false)
		return nil, err
	}
	defer release()

	date := attendance.DateOf(attempt.At)
	record, err := s.records.Find(ctx, match.EmployeeID, date)
	if err != nil {
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "record lookup failed")
	}

	flags, err := s.evaluateFraud(ctx, attempt, match.EmployeeID, concurrent)
	if err != nil {
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, err
	}
	trace.StepsRun = append(trace.StepsRun, audit.StepFraud)
	for _, flag := range flags {
		trace.FraudFlags = append(trace.FraudFlags, string(flag.Kind))
		s.metrics.IncrementFlag(string(flag.Kind), string(flag.Severity))
	}
	result.FraudFlags = flags

	// Flags persist even when the attempt is rejected; they are evidence
	// about the employee, not about this one request.
	if len(flags) > 0 {
		if err := s.records.AppendFlags(ctx, flags); err != nil {
			s.logger.ErrorContext(ctx, "persist fraud flags",
				"attempt_id", attempt.ID.String(),
				"employee_id", match.EmployeeID.String(),
				"error", err,
			)
		}
	}

	// State consistency wins over the score-based table: a repeat
	// check-in is misuse, not fraud, even when flags were raised. The
	// flags are already persisted above either way.
	if outcome, ok := consistencyRejection(attempt.Direction, record); ok {
		return s.decide(ctx, trace, result, outcome), nil
	}

	outcome := Decide(s.policy, DecisionInput{
		SpoofProbability: spoof,
		Matched:          true,
		Geo:              geo,
		Flags:            flags,
	})
	if outcome != ReasonAccepted {
		return s.decide(ctx, trace, result, outcome), nil
	}

	if err := s.commit(ctx, attempt, match, evidence, geo, record, result); err != nil {
		if dErrors.HasCode(err, dErrors.CodeConflict) {
			// Lost a cross-instance race despite the lock.
			return s.decide(ctx, trace, result, ReasonAlreadyCheckedIn), nil
		}
		s.writeTrace(ctx, trace, ReasonServiceUnavailable, false)
		return nil, err
	}

	return s.decide(ctx, trace, result, ReasonAccepted), nil
}

// identify embeds the best liveness frame and matches it against the
// enrolled candidates.
func (s *Service) identify(ctx context.Context, attempt Attempt, evidence *gatheredEvidence) (facematch.Match, bool, error) {
	embedCtx, cancel := context.WithTimeout(ctx, s.policy.ScorerTimeout)
	defer cancel()

	start := time.Now()
	probe, err := s.embedder.Embed(embedCtx, attempt.Frames[evidence.liveness.BestFrame])
	s.metrics.ObserveStage("embed", time.Since(start))
	if err != nil {
		return facematch.Match{}, false, dErrors.Wrap(err, dErrors.CodeUnavailable, "embedding extraction failed")
	}

	candidates, err := s.roster.ListCandidates(ctx)
	if err != nil {
		return facematch.Match{}, false, dErrors.Wrap(err, dErrors.CodeUnavailable, "candidate listing failed")
	}

	start = time.Now()
	match, ok := s.matcher.Match(probe, candidates)
	s.metrics.ObserveStage("match", time.Since(start))
	return match, ok, nil
}

// evaluateFraud assembles the evaluator input from the employee's history.
func (s *Service) evaluateFraud(ctx context.Context, attempt Attempt, employeeID id.EmployeeID, concurrent bool) ([]fraud.Flag, error) {
	since := attempt.At.Add(-s.policy.TravelLookback)
	history, err := s.records.ListSince(ctx, employeeID, since)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "history lookup failed")
	}
	priorCount, err := s.records.CountAccepted(ctx, employeeID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "record count failed")
	}
	deviceSeen := true
	if attempt.DeviceFingerprint != "" {
		deviceSeen, err = s.records.DeviceSeen(ctx, employeeID, attempt.DeviceFingerprint)
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "device lookup failed")
		}
	}

	start := time.Now()
	flags := s.fraud.Evaluate(fraud.Input{
		EmployeeID:         employeeID,
		At:                 attempt.At,
		Coordinate:         attempt.Coordinate,
		DeviceFingerprint:  attempt.DeviceFingerprint,
		ConcurrentInFlight: concurrent,
		History:            history,
		PriorRecordCount:   priorCount,
		DeviceSeen:         deviceSeen,
	})
	s.metrics.ObserveStage("fraud", time.Since(start))
	return flags, nil
}

// consistencyRejection maps the record state against the requested
// direction. A check-in with any record for the date is a repeat; a
// check-out needs an open record.
func consistencyRejection(direction Direction, record *attendance.Record) (ReasonCode, bool) {
	switch direction {
	case DirectionCheckIn:
		if record != nil {
			return ReasonAlreadyCheckedIn, true
		}
	case DirectionCheckOut:
		if record == nil {
			return ReasonNoOpenCheckIn, true
		}
		if !record.Open() {
			return ReasonAlreadyCheckedOut, true
		}
	}
	return "", false
}

// commit applies the accepted decision: a check-in creates the day record,
// a check-out mutates the open one.
func (s *Service) commit(ctx context.Context, attempt Attempt, match facematch.Match, evidence *gatheredEvidence, geo geofence.Result, record *attendance.Record, result *Result) error {
	date := attendance.DateOf(attempt.At)
	schedule, err := s.roster.DaySchedule(ctx, match.EmployeeID, date)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeUnavailable, "schedule lookup failed")
	}

	geoValidated := geo.Verdict == geofence.VerdictEvaluated && geo.WithinAnySite

	var distance *float64
	if geo.Verdict == geofence.VerdictEvaluated {
		d := geo.DistanceMeters
		distance = &d
	}

	switch attempt.Direction {
	case DirectionCheckIn:
		status := attendance.DeriveCheckInStatus(attempt.At, schedule)
		newRecord := &attendance.Record{
			ID:                id.NewRecordID(),
			EmployeeID:        match.EmployeeID,
			Date:              date,
			Status:            status,
			CheckInAt:         attempt.At,
			CheckInConfidence: match.Confidence,
			CheckInLiveness:   evidence.liveness.SpoofProbability,
			CheckInDevice:     attempt.DeviceFingerprint,
			CheckInLocation:   attempt.Coordinate,
			CheckInDistanceM:  distance,
			GeoValidated:      geoValidated,
			CreatedAt:         attempt.At,
		}
		if err := s.records.Create(ctx, newRecord); err != nil {
			return err
		}
		result.RecordID = &newRecord.ID
		result.Status = status

	case DirectionCheckOut:
		status := attendance.DeriveCheckOutStatus(record.Status, attempt.At, schedule)
		checkout := attendance.Checkout{
			At:           attempt.At,
			Confidence:   match.Confidence,
			Liveness:     evidence.liveness.SpoofProbability,
			Device:       attempt.DeviceFingerprint,
			Location:     attempt.Coordinate,
			DistanceM:    distance,
			GeoValidated: geoValidated,
			Status:       status,
		}
		if err := s.records.ApplyCheckout(ctx, record.ID, checkout); err != nil {
			return dErrors.Wrap(err, dErrors.CodeUnavailable, "checkout write failed")
		}
		result.RecordID = &record.ID
		result.Status = status
	}
	return nil
}

// decide finalizes a decision: trace, metrics, log, result.
func (s *Service) decide(ctx context.Context, trace audit.Trace, result *Result, outcome ReasonCode) *Result {
	accepted := outcome == ReasonAccepted
	trace.StepsRun = append(trace.StepsRun, audit.StepDecision)
	s.writeTrace(ctx, trace, outcome, accepted)
	s.metrics.IncrementOutcome(string(outcome), string(result.Direction))

	result.Outcome = outcome
	result.Accepted = accepted
	result.DecidedAt = time.Now()

	logArgs := []any{
		"attempt_id", result.AttemptID.String(),
		"direction", string(result.Direction),
		"outcome", string(outcome),
		"duration_ms", time.Since(trace.StartedAt).Milliseconds(),
	}
	if !result.EmployeeID.IsNil() {
		logArgs = append(logArgs, "employee_id", result.EmployeeID.String())
	}
	if accepted {
		s.logger.InfoContext(ctx, "verification decided", logArgs...)
	} else {
		s.logger.WarnContext(ctx, "verification rejected", logArgs...)
	}
	return result
}

func (s *Service) writeTrace(ctx context.Context, trace audit.Trace, outcome ReasonCode, accepted bool) {
	trace.Outcome = string(outcome)
	trace.Accepted = accepted
	trace.CompletedAt = time.Now()
	if err := s.audit.Append(ctx, trace); err != nil {
		s.logger.ErrorContext(ctx, "append audit trace",
			"attempt_id", trace.AttemptID.String(),
			"outcome", trace.Outcome,
			"error", err,
		)
	}
}
