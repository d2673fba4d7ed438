package join

import (
	"context"
	"errors"
	"sync/atomic"
)

// Junction is a local coordinator: a factory for channels and patterns, and
// the owner of the goroutine that serializes all state mutations for the
// channels and patterns it creates. Construct one with New.
type Junction struct {
	id        JunctionId
	coord     *coordinator
	handle    *ControllerHandle
	extracted atomic.Bool
}

// New constructs and starts a Junction, applying any supplied Options.
func New(opts ...Option) *Junction {
	cfg := resolveOptions(opts)

	id := allocateJunctionID()
	coord := newCoordinator(id, cfg.queueSize, cfg.workerLimit, cfg.logger)

	j := &Junction{
		id:    id,
		coord: coord,
	}
	j.handle = newControllerHandle(coord)

	go coord.run()

	return j
}

// newEndpoint allocates a fresh channel-id of the given mode by round-
// tripping a newChannelIDRequest through the coordinator.
func (j *Junction) newEndpoint(mode channelMode) endpoint {
	reply := make(chan ChannelId, 1)
	// newEndpoint is only ever called while the junction is alive (it is
	// the constructor path for channel handles); a post-shutdown call is a
	// programmer error distinct from the runtime PostAfterShutdownError
	// paths covered by §7, since there is no sensible zero-value channel-id
	// to hand back.
	if err := sendPacket(j.coord.packets, "new_channel", newChannelIDRequest{reply: reply}); err != nil {
		panic(err)
	}
	return endpoint{
		junctionID: j.id,
		channelID:  <-reply,
		mode:       mode,
		packets:    j.coord.packets,
	}
}

// ControllerHandle extracts this junction's controller handle, exactly
// once. After extraction, Close no longer stops the coordinator; the
// caller becomes responsible for calling handle.Stop.
func (j *Junction) ControllerHandle() (*ControllerHandle, error) {
	if !j.extracted.CompareAndSwap(false, true) {
		return nil, errors.New("join: controller handle already extracted")
	}
	return j.handle, nil
}

// Close stops the coordinator, unless the controller handle has already
// been extracted, in which case responsibility for stopping belongs to
// whoever extracted it.
func (j *Junction) Close() error {
	if j.extracted.Load() {
		return nil
	}
	return j.handle.Stop(context.Background())
}
