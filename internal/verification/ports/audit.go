package ports

import (
	"context"

	"github.com/rortizs/biometria-Sasvin/internal/audit"
)

// AuditPort receives the forensic trace of every attempt. This matches the
// audit.Store interface but is defined here to keep the module boundary
// explicit.
type AuditPort interface {
	Append(ctx context.Context, trace audit.Trace) error
}
