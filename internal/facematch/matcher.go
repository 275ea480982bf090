// Package facematch compares probe embeddings against enrolled templates.
//
// Matching is read-only: the matcher never mutates the candidate set and has
// no side effects. False rejection is preferred over false acceptance, so a
// best candidate that does not clear both the confidence threshold and the
// margin over the runner-up resolves to no match.
package facematch

import (
	"math"
	"time"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// Template is one enrolled embedding for an employee. Enrollment is
// additive; templates are never overwritten by this engine.
type Template struct {
	EmployeeID id.EmployeeID
	Embedding  []float64
	EnrolledAt time.Time
}

// Candidate groups an employee's enrolled templates. An employee with zero
// templates cannot be matched.
type Candidate struct {
	EmployeeID id.EmployeeID
	Templates  []Template
}

// Match is an accepted identification.
type Match struct {
	EmployeeID id.EmployeeID
	Confidence float64
}

// Matcher scores probes with Euclidean distance over unit-normalized
// embeddings. Confidence is 1 - distance, clamped to [0, 1], matching the
// scale the enrollment pipeline produces.
type Matcher struct {
	threshold float64
	margin    float64
}

// New validates the policy parameters and returns a Matcher.
func New(threshold, margin float64) (*Matcher, error) {
	if threshold <= 0 || threshold > 1 {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "match threshold must be in (0,1], got %v", threshold)
	}
	if margin < 0 || margin >= 1 {
		return nil, dErrors.Newf(dErrors.CodeBadRequest, "match margin must be in [0,1), got %v", margin)
	}
	return &Matcher{threshold: threshold, margin: margin}, nil
}

// Match returns the best-scoring employee for the probe, or ok=false when no
// candidate clears the threshold or the best two candidates are within the
// margin of each other (ambiguous identification).
func (m *Matcher) Match(probe []float64, candidates []Candidate) (Match, bool) {
	if len(probe) == 0 {
		return Match{}, false
	}
	normProbe := normalize(probe)

	best := Match{Confidence: -1}
	second := -1.0

	for _, candidate := range candidates {
		confidence, scored := m.bestTemplateConfidence(normProbe, candidate.Templates)
		if !scored {
			continue
		}
		switch {
		case confidence > best.Confidence:
			second = best.Confidence
			best = Match{EmployeeID: candidate.EmployeeID, Confidence: confidence}
		case confidence > second:
			second = confidence
		}
	}

	if best.Confidence < m.threshold {
		return Match{}, false
	}
	if second >= 0 && best.Confidence-second < m.margin {
		// Near-tie between two employees: refuse rather than pick.
		return Match{}, false
	}
	return best, true
}

// bestTemplateConfidence scores the probe against each of the candidate's
// templates and keeps the highest confidence. Templates whose dimensionality
// disagrees with the probe are skipped.
func (m *Matcher) bestTemplateConfidence(normProbe []float64, templates []Template) (float64, bool) {
	best := -1.0
	for _, tpl := range templates {
		if len(tpl.Embedding) != len(normProbe) {
			continue
		}
		confidence := Confidence(normProbe, normalize(tpl.Embedding))
		if confidence > best {
			best = confidence
		}
	}
	return best, best >= 0
}

// Confidence converts the Euclidean distance between two embeddings into a
// [0,1] confidence. Distance 0 maps to 1.0; distances of 1 or more map to 0.
func Confidence(a, b []float64) float64 {
	distance := euclidean(a, b)
	if distance >= 1 {
		return 0
	}
	return 1 - distance
}

func euclidean(a, b []float64) float64 {
	var sum float64
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return math.Sqrt(sum)
}

func normalize(v []float64) []float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return v
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
