package join

// terminalMode tags a pattern record by the mode of its terminal channel.
type terminalMode int

const (
	// terminalSend marks an all-Send pattern: no synchronous terminal.
	terminalSend terminalMode = iota
	// terminalRecv marks a pattern terminated by a Recv channel.
	terminalRecv
	// terminalBidir marks a pattern terminated by a Bidir channel.
	terminalBidir
)

// patternHandler is the uniform, type-erased shape every typed handler is
// adapted into at registration time: it accepts the ordered messages
// consumed for the pattern's channel list, invokes the client's typed
// handler, and for synchronous patterns delivers the result (or a recovered
// panic, converted to a BrokenReplyError) through the terminal message's
// reply endpoint. The returned error is non-nil only to give the
// coordinator something to log; reply delivery itself is self-contained.
type patternHandler func(junctionID JunctionId, patternID PatternId, messages []message) error

// patternRecord is an immutable, registered join pattern: an ordered,
// non-empty channel-id list (repeats carry multiplicity) plus the erased
// handler and the mode of the terminal channel, if any.
//
// Unlike the arity-bounded client-facing builder, patternRecord is fully
// general: channelIDs may be arbitrarily long, with arbitrary repeats,
// exactly as required to express the multiplicity-aware aliveness rule.
type patternRecord struct {
	id         PatternId
	junctionID JunctionId
	channelIDs []ChannelId
	terminal   terminalMode
	handler    patternHandler
}

// multiplicities aggregates channelIDs into per-channel required counts,
// used by the coordinator's aliveness filter.
func (p *patternRecord) multiplicities() map[ChannelId]int {
	counts := make(map[ChannelId]int, len(p.channelIDs))
	for _, id := range p.channelIDs {
		counts[id]++
	}
	return counts
}
