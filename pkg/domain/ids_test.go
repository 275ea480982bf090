package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// TestParseUUID_Invariants validates the parsing invariant: IDs must be
// valid, non-empty, non-nil UUIDs at trust boundaries.
func TestParseUUID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseEmployeeID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseEmployeeID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseEmployeeID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		validUUID := uuid.New()
		employeeID, err := ParseEmployeeID(validUUID.String())
		require.NoError(t, err)
		assert.Equal(t, EmployeeID(validUUID), employeeID)
	})

	t.Run("site and record parsers share the invariant", func(t *testing.T) {
		_, err := ParseSiteID(uuid.Nil.String())
		require.Error(t, err)
		_, err = ParseRecordID("not-a-uuid")
		require.Error(t, err)
	})
}

// TestTypeDistinction verifies the compiler enforces type safety.
// This is a compile-time check - if this compiles, the invariant holds.
func TestTypeDistinction(t *testing.T) {
	employeeID := EmployeeID(uuid.New())
	siteID := SiteID(uuid.New())

	// These would fail to compile if types were interchangeable:
	// var _ EmployeeID = siteID   // compile error
	// var _ SiteID = employeeID   // compile error

	// Verify they're distinct at runtime too
	assert.NotEqual(t, uuid.UUID(employeeID), uuid.UUID(siteID))
}

func TestIsNil(t *testing.T) {
	var zero EmployeeID
	assert.True(t, zero.IsNil())
	assert.False(t, EmployeeID(uuid.New()).IsNil())
}

func TestStringRoundTrip(t *testing.T) {
	recordID := NewRecordID()
	parsed, err := ParseRecordID(recordID.String())
	require.NoError(t, err)
	assert.Equal(t, recordID, parsed)
}
