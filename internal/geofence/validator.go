// Package geofence validates claimed coordinates against the circular
// validity radius of assigned sites.
package geofence

import (
	"math"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

const earthRadiusMeters = 6371000

// Coordinate is a WGS84 position.
type Coordinate struct {
	Latitude  float64
	Longitude float64
}

// Site is a named location with a validation radius.
type Site struct {
	ID     id.SiteID
	Name   string
	Center Coordinate
	// RadiusMeters must be positive; NewSite enforces it.
	RadiusMeters float64
	// RequireGeofence escalates an out-of-range verdict to a rejection
	// for attempts assigned to this site.
	RequireGeofence bool
}

// NewSite constructs a Site, rejecting non-positive radii.
func NewSite(siteID id.SiteID, name string, center Coordinate, radiusMeters float64, requireGeofence bool) (Site, bool) {
	if radiusMeters <= 0 {
		return Site{}, false
	}
	return Site{
		ID:              siteID,
		Name:            name,
		Center:          center,
		RadiusMeters:    radiusMeters,
		RequireGeofence: requireGeofence,
	}, true
}

// Verdict distinguishes an evaluated result from the two cases where no
// distance comparison happened at all.
type Verdict string

const (
	// VerdictEvaluated means a coordinate was compared against sites.
	VerdictEvaluated Verdict = "evaluated"
	// VerdictNotEvaluated means the caller supplied no coordinate. This
	// is not the same as out-of-range and must not cause rejection on
	// its own.
	VerdictNotEvaluated Verdict = "not_evaluated"
	// VerdictNotApplicable means the employee has no assigned site; the
	// result is excluded from the decision.
	VerdictNotApplicable Verdict = "not_applicable"
)

// Result is the outcome of a geofence validation.
type Result struct {
	Verdict        Verdict
	WithinAnySite  bool
	NearestSite    *Site
	DistanceMeters float64
	// FenceRequired is true when any of the sites the result was decided
	// against escalates out-of-range to a rejection.
	FenceRequired bool
}

// Survey holds the identity-independent leg of validation: the distance
// from one attempt coordinate to every active site, measured before the
// matcher has named an employee. Resolve applies a verdict once the
// employee's site assignment is known.
type Survey struct {
	// Evaluated is false when the attempt carried no coordinate.
	Evaluated bool

	sites     []Site
	distances []float64
}

// Measure computes the great-circle distance from coord to every site.
// The survey carries no verdict of its own.
func Measure(coord *Coordinate, sites []Site) Survey {
	survey := Survey{sites: sites}
	if coord == nil {
		return survey
	}
	survey.Evaluated = true
	survey.distances = make([]float64, len(sites))
	for i := range sites {
		survey.distances[i] = Distance(*coord, sites[i].Center)
	}
	return survey
}

// Nearest returns the closest surveyed site and its distance, false when
// nothing was measured.
func (s Survey) Nearest() (Site, float64, bool) {
	if !s.Evaluated || len(s.sites) == 0 {
		return Site{}, 0, false
	}
	best := 0
	for i := range s.distances {
		if s.distances[i] < s.distances[best] {
			best = i
		}
	}
	return s.sites[best], s.distances[best], true
}

// Resolve decides the verdict for the sites assigned to one employee,
// reusing the surveyed distances. An employee with no assigned surveyed
// site yields VerdictNotApplicable regardless of coordinate; assignments
// to sites absent from the survey are ignored.
func (s Survey) Resolve(assigned []id.SiteID) Result {
	assignedSet := make(map[id.SiteID]struct{}, len(assigned))
	for _, siteID := range assigned {
		assignedSet[siteID] = struct{}{}
	}

	result := Result{DistanceMeters: math.Inf(1)}
	applicable := false
	for i := range s.sites {
		site := s.sites[i]
		if _, ok := assignedSet[site.ID]; !ok {
			continue
		}
		applicable = true
		if site.RequireGeofence {
			result.FenceRequired = true
		}
		if !s.Evaluated {
			continue
		}
		distance := s.distances[i]
		if distance < result.DistanceMeters {
			result.DistanceMeters = distance
			result.NearestSite = &s.sites[i]
		}
		if distance <= site.RadiusMeters {
			result.WithinAnySite = true
		}
	}

	if !applicable {
		return Result{Verdict: VerdictNotApplicable}
	}
	if !s.Evaluated {
		return Result{Verdict: VerdictNotEvaluated, FenceRequired: result.FenceRequired}
	}
	result.Verdict = VerdictEvaluated
	return result
}

// Distance returns the haversine great-circle distance in meters.
func Distance(a, b Coordinate) float64 {
	phi1 := radians(a.Latitude)
	phi2 := radians(b.Latitude)
	deltaPhi := radians(b.Latitude - a.Latitude)
	deltaLambda := radians(b.Longitude - a.Longitude)

	h := math.Sin(deltaPhi/2)*math.Sin(deltaPhi/2) +
		math.Cos(phi1)*math.Cos(phi2)*math.Sin(deltaLambda/2)*math.Sin(deltaLambda/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))

	return earthRadiusMeters * c
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
