package join

import "context"

// message is a type-erased envelope carrying one payload for one channel.
// Its concrete shape depends on the channel's mode:
//   - Send: payload is the raw sent value.
//   - Recv: payload is a *replyBox[R], the reply endpoint, with no input.
//   - Bidir: payload is a bidirPayload, carrying the input value and the
//     reply endpoint.
//
// Handlers reconstitute the concrete type via a type assertion at
// invocation time, unreachable under a correctly constructed pattern. A
// failed assertion panics; the panic is recovered by the dispatching
// wrapper and reported as a BrokenReplyError, not as a TypeMismatchError.
type message struct {
	channelID ChannelId
	payload   any
}

// bidirPayload carries a Bidir channel's input value alongside its reply
// endpoint, type-erased at the field level (input is boxed by the caller).
type bidirPayload struct {
	input any
	reply any // *replyBox[R], erased
}

// replyBox is the ephemeral, typed return conduit embedded in synchronous
// (Recv/Bidir) messages. It is a buffered channel of capacity 1 so the
// coordinator's send into it never blocks, regardless of whether the
// waiting consumer is still listening.
type replyBox[R any] struct {
	ch chan replyResult[R]
}

// replyResult is the value or error delivered through a replyBox.
type replyResult[R any] struct {
	value R
	err   error
}

func newReplyBox[R any]() *replyBox[R] {
	return &replyBox[R]{ch: make(chan replyResult[R], 1)}
}

// fulfil delivers value as the reply. It must be called at most once, and
// never after breakReply.
func (b *replyBox[R]) fulfil(value R) {
	b.ch <- replyResult[R]{value: value}
}

// breakReply delivers err as a broken reply, implementing replyBreaker so
// the coordinator can release outstanding replies without knowing R. It
// must be called at most once, and never after fulfil.
func (b *replyBox[R]) breakReply(err error) {
	b.ch <- replyResult[R]{err: err}
}

// wait blocks until a result is delivered or ctx is done.
func (b *replyBox[R]) wait(ctx context.Context) (R, error) {
	select {
	case result := <-b.ch:
		return result.value, result.err
	case <-ctx.Done():
		var zero R
		return zero, ctx.Err()
	}
}

// replyBreakerOf extracts the replyBreaker embedded in a message payload,
// if any: a *replyBox[R] directly (Recv) or inside a bidirPayload (Bidir).
// Send payloads carry no reply endpoint and report ok=false.
func replyBreakerOf(payload any) (brk replyBreaker, ok bool) {
	switch v := payload.(type) {
	case replyBreaker:
		return v, true
	case bidirPayload:
		brk, ok = v.reply.(replyBreaker)
		return brk, ok
	default:
		return nil, false
	}
}
