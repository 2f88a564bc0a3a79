package wsendpoint

import "time"

const (
	DefaultMaxTextMessageSize   = 64 * 1024
	DefaultMaxBinaryMessageSize = 64 * 1024
	DefaultInputBufferSize      = 4 * 1024
	DefaultIdleTimeout          = 5 * time.Minute
)

// Policy carries the per-endpoint size and timing limits. The factory clones
// it for every dispatch table so one connection cannot mutate another's
// limits.
type Policy struct {
	MaxTextMessageSize   int64
	MaxBinaryMessageSize int64
	InputBufferSize      int
	IdleTimeout          time.Duration
}

func DefaultPolicy() *Policy {
	return &Policy{
		MaxTextMessageSize:   DefaultMaxTextMessageSize,
		MaxBinaryMessageSize: DefaultMaxBinaryMessageSize,
		InputBufferSize:      DefaultInputBufferSize,
		IdleTimeout:          DefaultIdleTimeout,
	}
}

func (p *Policy) Clone() *Policy {
	clone := *p
	return &clone
}
