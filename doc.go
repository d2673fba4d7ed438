// Package join implements a Join Calculus concurrency runtime: a local
// coordinator ("junction") on which callers allocate typed channels and
// declare join patterns — conjunctions of channel reads paired with a
// handler — that fire atomically once every channel in the pattern holds
// a message.
//
// # Architecture
//
// A [Junction], constructed with [New], owns a single goroutine (the
// coordinator) that serializes every state mutation: channel allocation,
// pattern registration, message arrival, and pattern firing. Because that
// goroutine is the sole mutator of the junction's inventory, pattern
// registry, inverted index, and fairness table, none of that state needs a
// lock; the only cross-goroutine communication is the coordinator's packet
// channel and the ephemeral reply channels embedded in synchronous
// messages.
//
// Channels come in three modes, constructed with [SendChannel],
// [RecvChannel], and [BidirChannel]:
//   - Send ([SendChan]) is fire-and-forget: [SendChan.Send] returns as soon
//     as the message has been queued.
//   - Recv ([RecvChan]) is synchronous-out: [RecvChan.Recv] blocks until a
//     pattern naming that channel fires and the handler returns a value.
//   - Bidir ([BidirChan]) is synchronous-in-and-out: [BidirChan.SendRecv]
//     supplies an input value alongside the implicit message and blocks for
//     the handler's return value.
//
// Patterns are assembled with the builder functions in pattern.go — [When],
// [WhenRecv], [WhenBidir], and the arity-extending [And] / [AndRecv1] /
// [AndBidir1] family — terminated by a call to ThenDo, which registers the
// pattern and supplies its handler. The builder surface is capped at three
// Send channels per pattern; the coordinator's internal representation has
// no such limit.
//
// # Matching and Fairness
//
// A pattern is alive once every channel it names holds at least as many
// queued messages as the pattern requires (a channel may appear more than
// once, for multiplicity). When more than one alive pattern could consume
// an arriving message, the coordinator fires the one that fired least
// recently, using an arbitrary-precision pseudo-time counter rather than a
// wall clock so ordering is exact and never wraps; a pattern that has never
// fired sorts before one that has, and pattern-id ascending breaks ties
// between patterns that have never fired.
//
// # Concurrency Model
//
// [SendChan.Send], [RecvChan.Recv], and [BidirChan.SendRecv] are safe to
// call concurrently, from any goroutine, and across channels belonging to
// the same junction. Registering a pattern over channels from more than one
// junction is rejected with [CrossJunctionError]. Every matched pattern's
// handler runs on its own worker goroutine, so handlers never block the
// coordinator. Handlers do not block each other unless [WithWorkerLimit] is
// set, in which case a worker waits until fewer than that many handlers are
// running.
//
// # Shutdown
//
// [Junction.Close] (or a [ControllerHandle] obtained via
// [Junction.ControllerHandle]) stops the coordinator: every outstanding
// Recv/Bidir reply is broken with [BrokenReplyError] so no caller blocks
// forever, any in-flight handler goroutines are allowed to finish, and
// every subsequent Send/Recv/SendRecv call fails with
// [PostAfterShutdownError]. Stop is idempotent — concurrent or repeated
// calls all observe the result of the single underlying shutdown sequence.
//
// # Logging
//
// [WithLogger] attaches a [*logiface.Logger] (backed by stumpy's JSON
// encoding in the common case) that records junction lifecycle and pattern
// registration/firing events at Info level, a reply forcibly broken by
// shutdown at Warning level, and handler errors at Error level. Logging is
// entirely optional; an unconfigured junction logs nothing.
//
// # Error Types
//
//   - [CrossJunctionError]: a pattern was assembled from channels belonging
//     to more than one junction.
//   - [PostAfterShutdownError]: a channel operation was attempted after the
//     owning junction stopped.
//   - [BrokenReplyError]: a synchronous call's reply was broken, either by
//     shutdown or by a panicking handler.
//   - [TypeMismatchError]: a handler's declared type did not match the
//     message actually delivered to it.
package join
