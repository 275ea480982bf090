package lock

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	id "github.com/rortizs/biometria-Sasvin/pkg/domain"
	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// releaseScript deletes the lock key only when it still holds our token,
// so a holder whose TTL expired cannot release a lock someone else now
// owns.
const releaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`

const lockKeyPrefix = "attendance:lock:"

// Redis is a multi-instance EmployeeLock using SET NX PX with a per-holder
// token. The TTL bounds how long a crashed holder can wedge an employee.
type Redis struct {
	client  redis.UniversalClient
	ttl     time.Duration
	retry   time.Duration
	release *redis.Script
}

// NewRedis builds a Redis lock. ttl must exceed the longest expected
// verification; the retry interval spaces acquisition polls.
func NewRedis(client redis.UniversalClient, ttl time.Duration) *Redis {
	return &Redis{
		client:  client,
		ttl:     ttl,
		retry:   50 * time.Millisecond,
		release: redis.NewScript(releaseScript),
	}
}

func (r *Redis) Acquire(ctx context.Context, employeeID id.EmployeeID) (func(), error) {
	key := lockKeyPrefix + employeeID.String()
	token := uuid.NewString()

	ticker := time.NewTicker(r.retry)
	defer ticker.Stop()

	for {
		ok, err := r.client.SetNX(ctx, key, token, r.ttl).Result()
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeUnavailable, "employee lock backend failed")
		}
		if ok {
			var once sync.Once
			release := func() {
				once.Do(func() {
					// Release must not inherit the caller's
					// cancellation or the lock lives out its TTL.
					ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
					defer cancel()
					_ = r.release.Run(ctx, r.client, []string{key}, token).Err()
				})
			}
			return release, nil
		}

		select {
		case <-ctx.Done():
			return nil, dErrors.Wrap(ctx.Err(), dErrors.CodeConsistencyViolation, "employee lock wait expired")
		case <-ticker.C:
		}
	}
}
