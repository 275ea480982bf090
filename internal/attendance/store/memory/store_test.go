package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rortizs/biometria-Sasvin/internal/attendance"
	"github.com/rortizs/biometria-Sasvin/internal/fraud"
	"github.com/rortizs/biometria-Sasvin/internal/geofence"
	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

func newRecord(employeeID id.EmployeeID, checkInAt time.Time) *attendance.Record {
	return &attendance.Record{
		ID:            id.NewRecordID(),
		EmployeeID:    employeeID,
		Date:          attendance.DateOf(checkInAt),
		Status:        attendance.StatusPresent,
		CheckInAt:     checkInAt,
		CheckInDevice: "kiosk-1",
		GeoValidated:  true,
		CreatedAt:     checkInAt,
	}
}

func TestStore_CreateRejectsSecondRecordForSameDay(t *testing.T) {
	store := NewStore()
	employeeID := id.EmployeeID(uuid.New())
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(context.Background(), newRecord(employeeID, at)))

	err := store.Create(context.Background(), newRecord(employeeID, at.Add(time.Hour)))
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))

	// A different date is a different record.
	require.NoError(t, store.Create(context.Background(), newRecord(employeeID, at.Add(24*time.Hour))))
}

func TestStore_ApplyCheckout(t *testing.T) {
	store := NewStore()
	employeeID := id.EmployeeID(uuid.New())
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	record := newRecord(employeeID, at)
	require.NoError(t, store.Create(context.Background(), record))

	out := at.Add(9 * time.Hour)
	checkout := attendance.Checkout{
		At:           out,
		Confidence:   0.91,
		Liveness:     0.1,
		Device:       "kiosk-2",
		Location:     &geofence.Coordinate{Latitude: 14.6, Longitude: -90.5},
		GeoValidated: false,
		Status:       attendance.StatusPresent,
	}
	require.NoError(t, store.ApplyCheckout(context.Background(), record.ID, checkout))

	stored, err := store.Find(context.Background(), employeeID, record.Date)
	require.NoError(t, err)
	require.NotNil(t, stored.CheckOutAt)
	assert.Equal(t, out, *stored.CheckOutAt)
	assert.Equal(t, "kiosk-2", stored.CheckOutDevice)

	// A geo-failed check-out downgrades a validated check-in.
	assert.False(t, stored.GeoValidated)

	// Second check-out is a conflict.
	err = store.ApplyCheckout(context.Background(), record.ID, checkout)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConflict))
}

func TestStore_ApplyCheckoutUnknownRecord(t *testing.T) {
	store := NewStore()
	err := store.ApplyCheckout(context.Background(), id.NewRecordID(), attendance.Checkout{})
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestStore_ListSince(t *testing.T) {
	store := NewStore()
	employeeID := id.EmployeeID(uuid.New())
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	for day := 0; day < 3; day++ {
		require.NoError(t, store.Create(context.Background(), newRecord(employeeID, base.AddDate(0, 0, day))))
	}

	recent, err := store.ListSince(context.Background(), employeeID, base.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, recent, 2)
	// Newest first.
	assert.True(t, recent[0].CheckInAt.After(recent[1].CheckInAt))
}

func TestStore_DeviceSeen(t *testing.T) {
	store := NewStore()
	employeeID := id.EmployeeID(uuid.New())
	at := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	require.NoError(t, store.Create(context.Background(), newRecord(employeeID, at)))

	seen, err := store.DeviceSeen(context.Background(), employeeID, "kiosk-1")
	require.NoError(t, err)
	assert.True(t, seen)

	seen, err = store.DeviceSeen(context.Background(), employeeID, "kiosk-99")
	require.NoError(t, err)
	assert.False(t, seen)

	// Another employee's devices do not leak.
	seen, err = store.DeviceSeen(context.Background(), id.EmployeeID(uuid.New()), "kiosk-1")
	require.NoError(t, err)
	assert.False(t, seen)
}

func TestStore_ListFilters(t *testing.T) {
	store := NewStore()
	alice := id.EmployeeID(uuid.New())
	bob := id.EmployeeID(uuid.New())
	base := time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)

	aliceRecord := newRecord(alice, base)
	aliceRecord.Status = attendance.StatusLate
	require.NoError(t, store.Create(context.Background(), aliceRecord))
	require.NoError(t, store.Create(context.Background(), newRecord(bob, base)))
	require.NoError(t, store.Create(context.Background(), newRecord(alice, base.AddDate(0, 0, 1))))

	byEmployee, err := store.List(context.Background(), attendance.Filter{EmployeeID: &alice})
	require.NoError(t, err)
	assert.Len(t, byEmployee, 2)

	late := attendance.StatusLate
	byStatus, err := store.List(context.Background(), attendance.Filter{Status: &late})
	require.NoError(t, err)
	require.Len(t, byStatus, 1)
	assert.Equal(t, alice, byStatus[0].EmployeeID)

	day := attendance.DateOf(base)
	byDate, err := store.List(context.Background(), attendance.Filter{From: day, To: day})
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	limited, err := store.List(context.Background(), attendance.Filter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestStore_AppendFlags(t *testing.T) {
	store := NewStore()
	employeeID := id.EmployeeID(uuid.New())

	flags := []fraud.Flag{
		{ID: id.NewFlagID(), EmployeeID: employeeID, Kind: fraud.KindDeviceAnomaly, Severity: fraud.SeverityLow},
		{ID: id.NewFlagID(), EmployeeID: id.EmployeeID(uuid.New()), Kind: fraud.KindImpossibleTravel, Severity: fraud.SeverityHigh},
	}
	require.NoError(t, store.AppendFlags(context.Background(), flags))

	mine, err := store.FlagsByEmployee(context.Background(), employeeID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, fraud.KindDeviceAnomaly, mine[0].Kind)
}
