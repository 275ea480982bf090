//go:build integration

package lock

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
	"github.com/rortizs/biometria-Sasvin/pkg/testutil/containers"
)

func TestRedisLock_AcquireAndRelease(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(context.Background()))

	locks := NewRedis(rc.Client, 5*time.Second)
	employeeID := id.EmployeeID(uuid.New())

	release, err := locks.Acquire(context.Background(), employeeID)
	require.NoError(t, err)

	// Second acquisition must wait until release.
	ctx, cancel := context.WithTimeout(context.Background(), 200*time.Millisecond)
	defer cancel()
	_, err = locks.Acquire(ctx, employeeID)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeConsistencyViolation))

	release()

	release2, err := locks.Acquire(context.Background(), employeeID)
	require.NoError(t, err)
	release2()
}

func TestRedisLock_ReleaseOnlyOwnToken(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(context.Background()))

	employeeID := id.EmployeeID(uuid.New())
	key := "attendance:lock:" + employeeID.String()

	// Short TTL so the first holder's lock expires while held.
	locks := NewRedis(rc.Client, 100*time.Millisecond)
	release, err := locks.Acquire(context.Background(), employeeID)
	require.NoError(t, err)

	time.Sleep(150 * time.Millisecond)

	// A second holder takes over after expiry.
	locks2 := NewRedis(rc.Client, 5*time.Second)
	release2, err := locks2.Acquire(context.Background(), employeeID)
	require.NoError(t, err)

	// The stale holder's release must not evict the new owner.
	release()
	val, err := rc.Client.Get(context.Background(), key).Result()
	require.NoError(t, err)
	assert.NotEmpty(t, val)

	release2()
}

func TestRedisLock_TTLExpiresCrashedHolder(t *testing.T) {
	rc := containers.NewRedisContainer(t)
	require.NoError(t, rc.FlushAll(context.Background()))

	locks := NewRedis(rc.Client, 200*time.Millisecond)
	employeeID := id.EmployeeID(uuid.New())

	// Simulate a crash: acquire and never release.
	_, err := locks.Acquire(context.Background(), employeeID)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	release, err := locks.Acquire(ctx, employeeID)
	require.NoError(t, err, "lock did not expire after TTL")
	release()
}
