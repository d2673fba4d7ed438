package join

import "sync/atomic"

// JunctionId uniquely identifies a Junction for the lifetime of the
// process. It is the one identity allocated from process-wide state; every
// other identity is confined to its owning coordinator goroutine.
type JunctionId uint64

// ChannelId uniquely identifies a channel within the junction that created
// it. Two channels on the same junction never share an id.
type ChannelId uint64

// PatternId uniquely identifies a pattern within the junction that
// registered it.
type PatternId uint64

var nextJunctionID atomic.Uint64

// allocateJunctionID returns a fresh, process-wide unique JunctionId.
func allocateJunctionID() JunctionId {
	return JunctionId(nextJunctionID.Add(1))
}

// idAllocator mints a monotonically increasing, junction-local sequence of
// identities. It is only ever touched from the coordinator goroutine, so it
// needs no synchronization of its own. The coordinator owns one instance
// per identity space (channels, patterns).
type idAllocator struct {
	next uint64
}

func (a *idAllocator) allocateChannelID() ChannelId {
	a.next++
	return ChannelId(a.next)
}

func (a *idAllocator) allocatePatternID() PatternId {
	a.next++
	return PatternId(a.next)
}
