package join

import (
	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// defaultQueueSize is the packet channel's buffer capacity when WithQueueSize
// is not supplied. A small buffer absorbs bursts without unbounded growth.
const defaultQueueSize = 64

// junctionOptions holds configuration for New.
type junctionOptions struct {
	queueSize   int
	logger      *logging
	workerLimit int
}

// Option configures a Junction. See New.
type Option interface {
	applyJunction(*junctionOptions)
}

type optionFunc func(*junctionOptions)

func (f optionFunc) applyJunction(cfg *junctionOptions) { f(cfg) }

// WithQueueSize sets the buffer capacity of the coordinator's packet
// channel. Non-positive values fall back to the default.
func WithQueueSize(n int) Option {
	return optionFunc(func(cfg *junctionOptions) {
		if n > 0 {
			cfg.queueSize = n
		}
	})
}

// WithLogger attaches a structured logger to the Junction, which records
// lifecycle and pattern-matching events at Info level and a shutdown-forced
// broken reply at Warning level. The logger is narrowed to stumpy's event
// type rather than generic over logiface.Event, since stumpy is the only
// backend this module depends on or exercises (see DESIGN.md). A nil logger
// (the default) is a documented no-op: every logging call becomes a cheap
// no-op field access rather than a branch the caller must guard.
func WithLogger(l *logiface.Logger[*stumpy.Event]) Option {
	return optionFunc(func(cfg *junctionOptions) {
		cfg.logger = newLogging(l)
	})
}

// WithWorkerLimit bounds the number of handler goroutines that may run
// concurrently for a junction. Non-positive values (the default) leave
// dispatch unbounded: every firing gets its own immediately-runnable
// goroutine, as in the original.
func WithWorkerLimit(n int) Option {
	return optionFunc(func(cfg *junctionOptions) {
		if n > 0 {
			cfg.workerLimit = n
		}
	})
}

func resolveOptions(opts []Option) *junctionOptions {
	cfg := &junctionOptions{
		queueSize: defaultQueueSize,
		logger:    newLogging(nil),
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.applyJunction(cfg)
	}
	return cfg
}
