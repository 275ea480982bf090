package fraud

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
)

var (
	now      = time.Date(2025, 3, 10, 8, 0, 0, 0, time.UTC)
	origin   = geofence.Coordinate{Latitude: 14.6349, Longitude: -90.5069}
	employee = id.EmployeeID(uuid.New())
)

// coordAtKm returns a coordinate approximately km kilometers north of origin.
func coordAtKm(km float64) geofence.Coordinate {
	return geofence.Coordinate{Latitude: origin.Latitude + km/111.32, Longitude: origin.Longitude}
}

func historyWithCheckIn(at time.Time, loc geofence.Coordinate) []attendance.Record {
	return []attendance.Record{{
		ID:              id.NewRecordID(),
		EmployeeID:      employee,
		Date:            attendance.DateOf(at),
		CheckInAt:       at,
		CheckInLocation: &loc,
	}}
}

func TestImpossibleTravelSeverityScalesWithSpeed(t *testing.T) {
	e := New(80, time.Hour, 3)

	// 500 km five minutes after the previous check-in: implied speed of
	// 6000 km/h, far past any plausible travel.
	current := coordAtKm(500)
	in := Input{
		EmployeeID: employee,
		At:         now,
		Coordinate: &current,
		History:    historyWithCheckIn(now.Add(-5*time.Minute), origin),
	}

	flags := e.Evaluate(in)
	require.Len(t, flags, 1)
	flag := flags[0]

	assert.Equal(t, KindImpossibleTravel, flag.Kind)
	assert.Equal(t, SeverityCritical, flag.Severity)
	assert.InDelta(t, 500, flag.Evidence.DistanceKm, 5)
	assert.InDelta(t, 5, flag.Evidence.ElapsedMinutes, 0.01)
	assert.Greater(t, flag.Evidence.SpeedRatio, 70.0)
	require.NotNil(t, flag.Evidence.ConflictingRecordID)
}

func TestImpossibleTravelSeverityLadder(t *testing.T) {
	e := New(80, time.Hour, 3)

	cases := []struct {
		name string
		km   float64
		want Severity
	}{
		// 30 minutes elapsed: km/0.5h gives the implied speed directly.
		{"barely over the limit", 48, SeverityLow},       // 96 km/h, ratio 1.2
		{"well over the limit", 68, SeverityMedium},      // 136 km/h, ratio 1.7
		{"double the limit", 100, SeverityHigh},          // 200 km/h, ratio 2.5
		{"physically impossible", 400, SeverityCritical}, // 800 km/h, ratio 10
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			current := coordAtKm(tc.km)
			flags := e.Evaluate(Input{
				EmployeeID: employee,
				At:         now,
				Coordinate: &current,
				History:    historyWithCheckIn(now.Add(-30*time.Minute), origin),
			})
			require.Len(t, flags, 1)
			assert.Equal(t, tc.want, flags[0].Severity)
		})
	}
}

func TestImpossibleTravelPlausibleSpeedNoFlag(t *testing.T) {
	e := New(80, time.Hour, 3)

	// 20 km in 30 minutes is 40 km/h: normal commuting.
	current := coordAtKm(20)
	flags := e.Evaluate(Input{
		EmployeeID: employee,
		At:         now,
		Coordinate: &current,
		History:    historyWithCheckIn(now.Add(-30*time.Minute), origin),
	})
	assert.Empty(t, flags)
}

func TestImpossibleTravelOutsideLookbackIgnored(t *testing.T) {
	e := New(80, time.Hour, 3)

	current := coordAtKm(500)
	flags := e.Evaluate(Input{
		EmployeeID: employee,
		At:         now,
		Coordinate: &current,
		History:    historyWithCheckIn(now.Add(-2*time.Hour), origin),
	})
	assert.Empty(t, flags)
}

func TestImpossibleTravelNoCoordinateSkipped(t *testing.T) {
	e := New(80, time.Hour, 3)

	flags := e.Evaluate(Input{
		EmployeeID: employee,
		At:         now,
		History:    historyWithCheckIn(now.Add(-5*time.Minute), origin),
	})
	assert.Empty(t, flags)
}

func TestImpossibleTravelUsesCheckOutWhenNewer(t *testing.T) {
	e := New(80, time.Hour, 3)

	checkOutAt := now.Add(-10 * time.Minute)
	checkOutLoc := origin
	history := historyWithCheckIn(now.Add(-50*time.Minute), coordAtKm(1))
	history[0].CheckOutAt = &checkOutAt
	history[0].CheckOutLocation = &checkOutLoc

	current := coordAtKm(500)
	flags := e.Evaluate(Input{
		EmployeeID: employee,
		At:         now,
		Coordinate: &current,
		History:    history,
	})

	require.Len(t, flags, 1)
	assert.InDelta(t, 10, flags[0].Evidence.ElapsedMinutes, 0.01)
}

func TestConcurrentSessionFlag(t *testing.T) {
	e := New(80, time.Hour, 3)

	flags := e.Evaluate(Input{
		EmployeeID:         employee,
		At:                 now,
		DeviceFingerprint:  "kiosk-1",
		ConcurrentInFlight: true,
	})

	require.Len(t, flags, 1)
	assert.Equal(t, KindConcurrentSession, flags[0].Kind)
	assert.Equal(t, SeverityCritical, flags[0].Severity)
}

func TestDeviceAnomalyUnseenDeviceWithHistory(t *testing.T) {
	e := New(80, time.Hour, 3)

	flags := e.Evaluate(Input{
		EmployeeID:        employee,
		At:                now,
		DeviceFingerprint: "new-kiosk",
		PriorRecordCount:  10,
		DeviceSeen:        false,
	})

	require.Len(t, flags, 1)
	assert.Equal(t, KindDeviceAnomaly, flags[0].Kind)
	assert.Equal(t, SeverityLow, flags[0].Severity)
	assert.Equal(t, 10, flags[0].Evidence.PriorRecords)
}

func TestDeviceAnomalyInsufficientHistoryIgnored(t *testing.T) {
	e := New(80, time.Hour, 3)

	flags := e.Evaluate(Input{
		EmployeeID:        employee,
		At:                now,
		DeviceFingerprint: "new-kiosk",
		PriorRecordCount:  2,
		DeviceSeen:        false,
	})
	assert.Empty(t, flags)
}

func TestDeviceAnomalyKnownDeviceIgnored(t *testing.T) {
	e := New(80, time.Hour, 3)

	flags := e.Evaluate(Input{
		EmployeeID:        employee,
		At:                now,
		DeviceFingerprint: "kiosk-1",
		PriorRecordCount:  10,
		DeviceSeen:        true,
	})
	assert.Empty(t, flags)
}

func TestRulesAreIndependent(t *testing.T) {
	e := New(80, time.Hour, 3)

	current := coordAtKm(500)
	flags := e.Evaluate(Input{
		EmployeeID:         employee,
		At:                 now,
		Coordinate:         &current,
		DeviceFingerprint:  "new-kiosk",
		ConcurrentInFlight: true,
		History:            historyWithCheckIn(now.Add(-5*time.Minute), origin),
		PriorRecordCount:   10,
		DeviceSeen:         false,
	})

	kinds := make(map[Kind]bool)
	for _, f := range flags {
		kinds[f.Kind] = true
	}
	assert.Len(t, flags, 3)
	assert.True(t, kinds[KindImpossibleTravel])
	assert.True(t, kinds[KindConcurrentSession])
	assert.True(t, kinds[KindDeviceAnomaly])
}

func TestSeverityRankOrdering(t *testing.T) {
	assert.Less(t, SeverityLow.Rank(), SeverityMedium.Rank())
	assert.Less(t, SeverityMedium.Rank(), SeverityHigh.Rank())
	assert.Less(t, SeverityHigh.Rank(), SeverityCritical.Rank())
	assert.Equal(t, 0, Severity("unknown").Rank())
}
