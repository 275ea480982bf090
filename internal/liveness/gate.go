// Package liveness gates verification attempts on an anti-spoofing score.
//
// The classifier itself is an external service behind the Scorer port. The
// gate owns input validation, the per-call timeout, a single retry with
// backoff, and the fail-closed contract: when the classifier cannot be
// reached, the attempt is rejected, never waved through.
package liveness

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"time"

	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

//go:generate mockgen -source=gate.go -destination=mocks/mocks.go -package=mocks Scorer

// Scorer is the external anti-spoofing classifier. It returns one spoof
// probability in [0,1] per frame (higher = more likely a replay attack).
type Scorer interface {
	ScoreFrames(ctx context.Context, frames [][]byte) ([]float64, error)
}

// Score is the gate's verdict over a multi-frame probe.
type Score struct {
	// SpoofProbability is the average across frames.
	SpoofProbability float64
	// FrameScores holds the per-frame probabilities, audit-trace bound.
	FrameScores []float64
	// BestFrame indexes the frame with the lowest spoof probability; the
	// matcher reuses it as the probe image.
	BestFrame int
}

// Gate validates and scores probe frames.
type Gate struct {
	scorer    Scorer
	minFrames int
	timeout   time.Duration
	backoff   time.Duration
	logger    *slog.Logger
}

// Option configures optional Gate dependencies.
type Option func(*Gate)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gate) { g.logger = logger }
}

// WithRetryBackoff overrides the delay before the single retry.
func WithRetryBackoff(backoff time.Duration) Option {
	return func(g *Gate) { g.backoff = backoff }
}

// New constructs a Gate.
func New(scorer Scorer, minFrames int, timeout time.Duration, opts ...Option) (*Gate, error) {
	if scorer == nil {
		return nil, dErrors.New(dErrors.CodeBadRequest, "liveness scorer is required")
	}
	if minFrames < 1 {
		minFrames = 1
	}
	g := &Gate{
		scorer:    scorer,
		minFrames: minFrames,
		timeout:   timeout,
		backoff:   200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Evaluate validates the frames and returns their spoof score.
//
// Malformed input (too few frames, undecodable image) is the caller's fault
// and surfaces as invalid_input before any scoring happens. A classifier
// failure is retried once; a second failure surfaces as unavailable.
func (g *Gate) Evaluate(ctx context.Context, frames [][]byte) (Score, error) {
	if len(frames) < g.minFrames {
		return Score{}, dErrors.Newf(dErrors.CodeInvalidInput,
			"need at least %d frames for liveness detection, got %d", g.minFrames, len(frames))
	}
	for i, frame := range frames {
		if _, _, err := image.DecodeConfig(bytes.NewReader(frame)); err != nil {
			return Score{}, dErrors.Wrap(err, dErrors.CodeInvalidInput,
				fmt.Sprintf("frame %d is not a decodable image", i))
		}
	}

	scores, err := g.scoreWithRetry(ctx, frames)
	if err != nil {
		return Score{}, err
	}
	if len(scores) != len(frames) {
		return Score{}, dErrors.Newf(dErrors.CodeInternal,
			"scorer returned %d scores for %d frames", len(scores), len(frames))
	}

	result := Score{FrameScores: scores}
	var sum float64
	for i, s := range scores {
		if s < 0 || s > 1 {
			return Score{}, dErrors.Newf(dErrors.CodeInternal, "spoof probability out of range: %v", s)
		}
		sum += s
		if s < scores[result.BestFrame] {
			result.BestFrame = i
		}
	}
	result.SpoofProbability = sum / float64(len(scores))
	return result, nil
}

func (g *Gate) scoreWithRetry(ctx context.Context, frames [][]byte) ([]float64, error) {
	scores, err := g.scoreOnce(ctx, frames)
	if err == nil {
		return scores, nil
	}
	if ctx.Err() != nil {
		// Caller aborted; do not retry against a dead request.
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "liveness scoring cancelled")
	}

	if g.logger != nil {
		g.logger.WarnContext(ctx, "liveness scorer failed, retrying once",
			"error", err,
			"backoff", g.backoff,
		)
	}

	select {
	case <-time.After(g.backoff):
	case <-ctx.Done():
		return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeUnavailable, "liveness scoring cancelled")
	}

	scores, err = g.scoreOnce(ctx, frames)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "liveness scorer failed after retry")
	}
	return scores, nil
}

func (g *Gate) scoreOnce(ctx context.Context, frames [][]byte) ([]float64, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}
	return g.scorer.ScoreFrames(ctx, frames)
}
