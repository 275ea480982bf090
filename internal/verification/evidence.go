package verification

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	"github.com/rortizs/biometria-Sasvin/internal/liveness"
)

// gatheredEvidence holds the identity-independent stage results. The geo
// survey carries distances only; the verdict is resolved after the matcher
// names an employee and their site assignment is known.
type gatheredEvidence struct {
	liveness liveness.Score
	survey   geofence.Survey
}

// gatherEvidence runs the liveness gate and the geofence distance survey
// in parallel with shared cancellation. Both are independent of who the
// probe turns out to be; identification waits for liveness to pass.
func (s *Service) gatherEvidence(ctx context.Context, attempt Attempt) (*gatheredEvidence, error) {
	g, ctx := errgroup.WithContext(ctx)

	evidence := &gatheredEvidence{}

	g.Go(func() error {
		start := time.Now()
		score, err := s.gate.Evaluate(ctx, attempt.Frames)
		s.metrics.ObserveStage("liveness", time.Since(start))
		if err != nil {
			return err
		}
		evidence.liveness = score
		return nil
	})

	g.Go(func() error {
		start := time.Now()
		sites, err := s.roster.ActiveSites(ctx)
		if err != nil {
			return err
		}
		evidence.survey = geofence.Measure(attempt.Coordinate, sites)
		s.metrics.ObserveStage("geofence", time.Since(start))
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return evidence, nil
}
