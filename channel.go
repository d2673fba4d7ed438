package join

import "context"

// channelMode tags a channel endpoint by its synchronization discipline.
type channelMode int

const (
	modeSend channelMode = iota
	modeRecv
	modeBidir
)

// endpoint is the data every channel handle shares: its identity and a
// reference to the coordinator's packet intake. It holds no back-reference
// to the Junction, keeping ownership acyclic (see DESIGN.md).
type endpoint struct {
	junctionID JunctionId
	channelID  ChannelId
	mode       channelMode
	packets    chan<- packet
}

// SendChan is an asynchronous channel endpoint: sending on it does not wait
// for any pattern to fire. The coordinator's packet channel is buffered (see
// WithQueueSize), and Send blocks while that buffer is full. Duplicates
// (assignment, passing by value) share the same channel-id and coordinator
// queue.
type SendChan[T any] struct {
	endpoint
}

// Send enqueues v as a message on the channel. It returns
// PostAfterShutdownError if the coordinator has already stopped.
func (s SendChan[T]) Send(v T) error {
	return sendPacket(s.packets, "send", messagePacket{channelID: s.channelID, payload: v})
}

// RecvChan is a synchronous channel endpoint whose Recv blocks until a
// pattern containing it fires, yielding the firing handler's return value.
type RecvChan[R any] struct {
	endpoint
}

// Recv blocks until a pattern containing this channel fires, ctx is done,
// or the coordinator shuts down (in which case the reply is broken and a
// BrokenReplyError is returned).
func (r RecvChan[R]) Recv(ctx context.Context) (R, error) {
	box := newReplyBox[R]()
	if err := sendPacket(r.packets, "recv", messagePacket{channelID: r.channelID, payload: box}); err != nil {
		var zero R
		return zero, err
	}
	return box.wait(ctx)
}

// BidirChan is a synchronous channel endpoint whose SendRecv supplies an
// input value and blocks for the firing handler's return value.
type BidirChan[T, R any] struct {
	endpoint
}

// SendRecv enqueues v as the channel's input and blocks for the firing
// handler's return value, exactly like RecvChan.Recv.
func (b BidirChan[T, R]) SendRecv(ctx context.Context, v T) (R, error) {
	box := newReplyBox[R]()
	payload := bidirPayload{input: v, reply: box}
	if err := sendPacket(b.packets, "send_recv", messagePacket{channelID: b.channelID, payload: payload}); err != nil {
		var zero R
		return zero, err
	}
	return box.wait(ctx)
}

// SendChannel allocates a fresh Send channel on j.
func SendChannel[T any](j *Junction) SendChan[T] {
	return SendChan[T]{endpoint: j.newEndpoint(modeSend)}
}

// RecvChannel allocates a fresh Recv channel on j.
func RecvChannel[R any](j *Junction) RecvChan[R] {
	return RecvChan[R]{endpoint: j.newEndpoint(modeRecv)}
}

// BidirChannel allocates a fresh Bidir channel on j.
func BidirChannel[T, R any](j *Junction) BidirChan[T, R] {
	return BidirChan[T, R]{endpoint: j.newEndpoint(modeBidir)}
}
