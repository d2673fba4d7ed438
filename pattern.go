package join

import "fmt"

// builderState is the runtime state shared by every typed builder: the
// junction the pattern must belong to, the accumulated ordered channel-id
// list (repeats carry multiplicity), and a sticky construction error. Every
// exported builder type below is a thin, phantom-typed wrapper around this
// state; the type parameters exist only to keep ThenDo's handler signature
// checked at compile time.
type builderState struct {
	junctionID JunctionId
	packets    chan<- packet
	channelIDs []ChannelId
	err        error
}

func newBuilderState(e endpoint) builderState {
	return builderState{
		junctionID: e.junctionID,
		packets:    e.packets,
		channelIDs: []ChannelId{e.channelID},
	}
}

// extend appends e's channel to the accumulated list, recording a
// CrossJunctionError if e belongs to a different junction than the one the
// builder started with. The invariant is enforced on every extension, per
// §4.3.
func (b builderState) extend(e endpoint) builderState {
	next := b
	next.channelIDs = append(append([]ChannelId(nil), b.channelIDs...), e.channelID)
	if b.err == nil && e.junctionID != b.junctionID {
		next.err = &CrossJunctionError{Builder: b.junctionID, Channel: e.junctionID}
	}
	return next
}

// register sends an addPatternRequest for the accumulated channel list and
// handler, returning the builder's sticky error instead if one was recorded
// during construction.
func (b builderState) register(terminal terminalMode, handler patternHandler) error {
	if b.err != nil {
		return b.err
	}

	reply := make(chan addPatternResult, 1)
	req := addPatternRequest{
		channelIDs: b.channelIDs,
		terminal:   terminal,
		handler:    handler,
		reply:      reply,
	}
	if err := sendPacket(b.packets, "then_do", req); err != nil {
		return err
	}
	<-reply
	return nil
}

// recoverHandler runs fn, converting a panic into an error rather than
// letting it escape the worker goroutine dispatching it. Used for
// Send-terminal patterns, which have no reply endpoint to break.
func recoverHandler(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
		}
	}()
	return fn()
}

// deliverReply runs fn and fulfils box with its result. If fn panics, the
// panic is recovered and converted into a BrokenReplyError delivered
// through box instead of fulfil, so a blocked synchronous consumer always
// observes a result rather than hanging.
func deliverReply[R any](box *replyBox[R], fn func() R) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = panicToError(r)
			box.breakReply(err)
		}
	}()
	box.fulfil(fn())
	return nil
}

func panicToError(r any) error {
	if err, ok := r.(error); ok {
		return &BrokenReplyError{Cause: err}
	}
	return &BrokenReplyError{Cause: fmt.Errorf("%v", r)}
}

// --- Zero Send channels, synchronous terminal ---

// RecvBuilder0 is a partial pattern consisting of a single Recv channel and
// no Send channels.
type RecvBuilder0[R any] struct{ builderState }

// WhenRecv starts a pattern whose sole channel is a Recv channel.
func WhenRecv[R any](r RecvChan[R]) *RecvBuilder0[R] {
	return &RecvBuilder0[R]{newBuilderState(r.endpoint)}
}

// ThenDo registers the pattern with handler as its body, invoked with no
// arguments and expected to return the value delivered to the blocked Recv.
func (b *RecvBuilder0[R]) ThenDo(handler func() R) error {
	return b.register(terminalRecv, func(_ JunctionId, _ PatternId, messages []message) error {
		box := messages[len(messages)-1].payload.(*replyBox[R])
		return deliverReply(box, handler)
	})
}

// BidirBuilder0 is a partial pattern consisting of a single Bidir channel
// and no Send channels.
type BidirBuilder0[T, R any] struct{ builderState }

// WhenBidir starts a pattern whose sole channel is a Bidir channel.
func WhenBidir[T, R any](bd BidirChan[T, R]) *BidirBuilder0[T, R] {
	return &BidirBuilder0[T, R]{newBuilderState(bd.endpoint)}
}

// ThenDo registers the pattern with handler as its body, invoked with the
// Bidir channel's input value and expected to return the reply value.
func (b *BidirBuilder0[T, R]) ThenDo(handler func(T) R) error {
	return b.register(terminalBidir, func(_ JunctionId, _ PatternId, messages []message) error {
		bp := messages[len(messages)-1].payload.(bidirPayload)
		box := bp.reply.(*replyBox[R])
		return deliverReply(box, func() R { return handler(bp.input.(T)) })
	})
}

// --- One Send channel ---

// Builder1 is a partial pattern with one accumulated Send channel.
type Builder1[T any] struct{ builderState }

// When starts a pattern with s as its first Send channel.
func When[T any](s SendChan[T]) *Builder1[T] {
	return &Builder1[T]{newBuilderState(s.endpoint)}
}

// And extends the pattern with another Send channel.
func And[T, U any](b *Builder1[T], s SendChan[U]) *Builder2[T, U] {
	return &Builder2[T, U]{b.extend(s.endpoint)}
}

// AndRecv1 terminates the pattern with a Recv channel.
func AndRecv1[T, R any](b *Builder1[T], r RecvChan[R]) *RecvBuilder1[T, R] {
	return &RecvBuilder1[T, R]{b.extend(r.endpoint)}
}

// AndBidir1 terminates the pattern with a Bidir channel.
func AndBidir1[T, U, R any](b *Builder1[T], bd BidirChan[U, R]) *BidirBuilder1[T, U, R] {
	return &BidirBuilder1[T, U, R]{b.extend(bd.endpoint)}
}

// ThenDo registers an all-Send pattern with handler as its body.
func (b *Builder1[T]) ThenDo(handler func(T)) error {
	return b.register(terminalSend, func(_ JunctionId, _ PatternId, messages []message) error {
		return recoverHandler(func() error {
			handler(messages[0].payload.(T))
			return nil
		})
	})
}

// RecvBuilder1 is a partial pattern with one Send channel, terminated by a
// Recv channel.
type RecvBuilder1[T, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *RecvBuilder1[T, R]) ThenDo(handler func(T) R) error {
	return b.register(terminalRecv, func(_ JunctionId, _ PatternId, messages []message) error {
		box := messages[len(messages)-1].payload.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T)) })
	})
}

// BidirBuilder1 is a partial pattern with one Send channel, terminated by a
// Bidir channel.
type BidirBuilder1[T, U, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *BidirBuilder1[T, U, R]) ThenDo(handler func(T, U) R) error {
	return b.register(terminalBidir, func(_ JunctionId, _ PatternId, messages []message) error {
		bp := messages[len(messages)-1].payload.(bidirPayload)
		box := bp.reply.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T), bp.input.(U)) })
	})
}

// --- Two Send channels ---

// Builder2 is a partial pattern with two accumulated Send channels.
type Builder2[T, U any] struct{ builderState }

// And2 extends the pattern with a third Send channel.
func And2[T, U, V any](b *Builder2[T, U], s SendChan[V]) *Builder3[T, U, V] {
	return &Builder3[T, U, V]{b.extend(s.endpoint)}
}

// AndRecv2 terminates the pattern with a Recv channel.
func AndRecv2[T, U, R any](b *Builder2[T, U], r RecvChan[R]) *RecvBuilder2[T, U, R] {
	return &RecvBuilder2[T, U, R]{b.extend(r.endpoint)}
}

// AndBidir2 terminates the pattern with a Bidir channel.
func AndBidir2[T, U, V, R any](b *Builder2[T, U], bd BidirChan[V, R]) *BidirBuilder2[T, U, V, R] {
	return &BidirBuilder2[T, U, V, R]{b.extend(bd.endpoint)}
}

// ThenDo registers an all-Send pattern with handler as its body.
func (b *Builder2[T, U]) ThenDo(handler func(T, U)) error {
	return b.register(terminalSend, func(_ JunctionId, _ PatternId, messages []message) error {
		return recoverHandler(func() error {
			handler(messages[0].payload.(T), messages[1].payload.(U))
			return nil
		})
	})
}

// RecvBuilder2 is a partial pattern with two Send channels, terminated by a
// Recv channel.
type RecvBuilder2[T, U, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *RecvBuilder2[T, U, R]) ThenDo(handler func(T, U) R) error {
	return b.register(terminalRecv, func(_ JunctionId, _ PatternId, messages []message) error {
		box := messages[len(messages)-1].payload.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T), messages[1].payload.(U)) })
	})
}

// BidirBuilder2 is a partial pattern with two Send channels, terminated by
// a Bidir channel.
type BidirBuilder2[T, U, V, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *BidirBuilder2[T, U, V, R]) ThenDo(handler func(T, U, V) R) error {
	return b.register(terminalBidir, func(_ JunctionId, _ PatternId, messages []message) error {
		bp := messages[len(messages)-1].payload.(bidirPayload)
		box := bp.reply.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T), messages[1].payload.(U), bp.input.(V)) })
	})
}

// --- Three Send channels ---

// Builder3 is a partial pattern with three accumulated Send channels; per
// DESIGN.md, this is the practical arity ceiling for the typed builder
// surface (matching the original's own macro-generated ceiling), though the
// coordinator's internal patternRecord remains fully general.
type Builder3[T, U, V any] struct{ builderState }

// AndRecv3 terminates the pattern with a Recv channel.
func AndRecv3[T, U, V, R any](b *Builder3[T, U, V], r RecvChan[R]) *RecvBuilder3[T, U, V, R] {
	return &RecvBuilder3[T, U, V, R]{b.extend(r.endpoint)}
}

// AndBidir3 terminates the pattern with a Bidir channel.
func AndBidir3[T, U, V, W, R any](b *Builder3[T, U, V], bd BidirChan[W, R]) *BidirBuilder3[T, U, V, W, R] {
	return &BidirBuilder3[T, U, V, W, R]{b.extend(bd.endpoint)}
}

// ThenDo registers an all-Send pattern with handler as its body.
func (b *Builder3[T, U, V]) ThenDo(handler func(T, U, V)) error {
	return b.register(terminalSend, func(_ JunctionId, _ PatternId, messages []message) error {
		return recoverHandler(func() error {
			handler(messages[0].payload.(T), messages[1].payload.(U), messages[2].payload.(V))
			return nil
		})
	})
}

// RecvBuilder3 is a partial pattern with three Send channels, terminated by
// a Recv channel.
type RecvBuilder3[T, U, V, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *RecvBuilder3[T, U, V, R]) ThenDo(handler func(T, U, V) R) error {
	return b.register(terminalRecv, func(_ JunctionId, _ PatternId, messages []message) error {
		box := messages[len(messages)-1].payload.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T), messages[1].payload.(U), messages[2].payload.(V)) })
	})
}

// BidirBuilder3 is a partial pattern with three Send channels, terminated
// by a Bidir channel.
type BidirBuilder3[T, U, V, W, R any] struct{ builderState }

// ThenDo registers the pattern with handler as its body.
func (b *BidirBuilder3[T, U, V, W, R]) ThenDo(handler func(T, U, V, W) R) error {
	return b.register(terminalBidir, func(_ JunctionId, _ PatternId, messages []message) error {
		bp := messages[len(messages)-1].payload.(bidirPayload)
		box := bp.reply.(*replyBox[R])
		return deliverReply(box, func() R { return handler(messages[0].payload.(T), messages[1].payload.(U), messages[2].payload.(V), bp.input.(W)) })
	})
}
