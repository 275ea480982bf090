package audit

import (
	"context"
	"errors"

	dErrors "github.com/rortizs/biometria-Sasvin/pkg/domain-errors"
)

// ChannelSink implements Store by enqueueing traces for a background
// Worker, keeping trace persistence off the verification hot path. Append
// never blocks: a full inbox returns unavailable and the caller logs the
// dropped trace.
type ChannelSink struct {
	inbox chan Trace
}

// NewChannelSink creates a sink with the given inbox capacity.
func NewChannelSink(capacity int) *ChannelSink {
	if capacity < 1 {
		capacity = 1
	}
	return &ChannelSink{inbox: make(chan Trace, capacity)}
}

// Inbox is the receive side handed to the Worker.
func (s *ChannelSink) Inbox() <-chan Trace {
	return s.inbox
}

func (s *ChannelSink) Append(ctx context.Context, trace Trace) error {
	select {
	case s.inbox <- trace:
		return nil
	default:
		return dErrors.New(dErrors.CodeUnavailable, "audit inbox full")
	}
}

// Multi fans a trace out to several stores; every store is attempted and
// failures are joined.
type Multi []Store

func (m Multi) Append(ctx context.Context, trace Trace) error {
	var errs []error
	for _, store := range m {
		if err := store.Append(ctx, trace); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
