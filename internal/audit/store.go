package audit

import "context"

// Store persists audit traces. Swap with concrete storage without touching
// the verification service.
type Store interface {
	Append(ctx context.Context, trace Trace) error
}
