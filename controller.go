package join

import (
	"context"
	"sync"
	"sync/atomic"
)

// ControllerHandle is the external life-cycle control for a Junction's
// coordinator: it can report liveness and perform a graceful shutdown.
//
// Stop is idempotent: concurrent or repeated calls all observe the same
// outcome, and only the first call performs the underlying shutdown
// sequence. This deliberately improves on the Rust original's
// Option::take().unwrap() pattern, which panics on a second stop() call
// (see DESIGN.md).
type ControllerHandle struct {
	coord    *coordinator
	stopOnce sync.Once
	stopErr  error
	stopped  atomic.Bool
}

func newControllerHandle(coord *coordinator) *ControllerHandle {
	return &ControllerHandle{
		coord: coord,
	}
}

// Alive reports whether the coordinator goroutine is still running.
func (h *ControllerHandle) Alive() bool {
	return !h.stopped.Load()
}

// Stop posts a shutdown request and waits for the coordinator goroutine to
// finish processing it, or for ctx to be done, whichever comes first.
// Calling Stop more than once, even concurrently, is safe: every caller
// observes the result of the single underlying shutdown sequence.
func (h *ControllerHandle) Stop(ctx context.Context) error {
	h.stopOnce.Do(func() {
		done := make(chan struct{})
		if err := sendPacket(h.coord.packets, "stop", shutdownRequest{done: done}); err != nil {
			// Already shut down by some other path (should not happen in
			// practice, since shutdownRequest is the only thing that
			// closes the packets channel, and only this method sends it).
			h.stopped.Store(true)
			return
		}

		select {
		case <-done:
			h.stopped.Store(true)
		case <-ctx.Done():
			h.stopErr = ctx.Err()
			go func() {
				<-done
				h.stopped.Store(true)
			}()
		}
	})
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return h.stopErr
}
