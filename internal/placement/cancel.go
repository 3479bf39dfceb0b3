package placement

import (
	"context"
	"time"
)

// CancelToken is the cooperative cancellation/timeout signal threaded
// through every search strategy. It wraps a context.Context rather than
// reinventing a channel-and-flag pair, since context already carries both
// a cancellation signal and an optional deadline.
type CancelToken struct {
	ctx context.Context
}

// NewCancelToken adapts a context.Context into a CancelToken.
func NewCancelToken(ctx context.Context) CancelToken {
	if ctx == nil {
		ctx = context.Background()
	}
	return CancelToken{ctx: ctx}
}

// NoCancel returns a token that never cancels and has no deadline.
func NoCancel() CancelToken {
	return CancelToken{ctx: context.Background()}
}

// Cancelled reports whether the token has been cancelled or its deadline
// has passed. Checked at iteration boundaries only.
func (c CancelToken) Cancelled() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Deadline returns the token's deadline, if any.
func (c CancelToken) Deadline() (time.Time, bool) {
	return c.ctx.Deadline()
}
