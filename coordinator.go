package join

import (
	"sync"

	"github.com/joeycumines/go-join/internal/bag"
	"github.com/joeycumines/go-join/internal/index"
	"github.com/joeycumines/go-join/internal/pseudotime"
)

// packet is the sum of the four inputs the coordinator's single-consumer
// loop accepts, per §4.1: a message arrival, an identity request, a pattern
// registration, or a shutdown request.
type packet interface {
	isPacket()
}

type messagePacket struct {
	channelID ChannelId
	payload   any
}

func (messagePacket) isPacket() {}

type newChannelIDRequest struct {
	reply chan ChannelId
}

func (newChannelIDRequest) isPacket() {}

type addPatternRequest struct {
	channelIDs []ChannelId
	terminal   terminalMode
	handler    patternHandler
	reply      chan addPatternResult
}

func (addPatternRequest) isPacket() {}

type addPatternResult struct {
	id PatternId
}

type shutdownRequest struct {
	done chan struct{}
}

func (shutdownRequest) isPacket() {}

// sendPacket attempts to deliver p to the coordinator. It returns
// PostAfterShutdownError, tagged with op, if the coordinator's packet
// channel has already been closed.
func sendPacket(packets chan<- packet, op string, p packet) (err error) {
	defer func() {
		if recover() != nil {
			err = &PostAfterShutdownError{Op: op}
		}
	}()
	packets <- p
	return nil
}

// replyBreaker is implemented by every replyBox[R], regardless of R, so the
// coordinator can track and release outstanding synchronous replies without
// needing to know their reply type.
type replyBreaker interface {
	breakReply(err error)
}

// coordinator is the single-consumer loop that owns all of a junction's
// mutable state: the message inventory, the pattern registry, the inverted
// index, and the fairness (last-fired) table. It is the sole mutator of
// that state, so no locks are required internally; the only cross-goroutine
// communication is the packets channel and the ephemeral reply channels
// embedded in synchronous messages.
type coordinator struct {
	junctionID JunctionId
	logger     *logging

	packets chan packet

	channelIDs idAllocator
	patternIDs idAllocator

	inventory  *bag.Bag[ChannelId, message]
	registry   map[PatternId]*patternRecord
	index      *index.Index[ChannelId, PatternId]
	lastFired  map[PatternId]*pseudotime.Counter[uint64]
	msgCounter pseudotime.Counter[uint64]

	// openReplies tracks every outstanding reply endpoint so that shutdown
	// can deliberately break them, per §5's mandated (not merely
	// recommended) behavior.
	openReplies map[replyBreaker]struct{}

	// dispatchSem bounds concurrent handler goroutines when a worker limit
	// is configured; nil means dispatch is unbounded.
	dispatchSem chan struct{}

	workers sync.WaitGroup
}

func newCoordinator(junctionID JunctionId, queueSize, workerLimit int, logger *logging) *coordinator {
	c := &coordinator{
		junctionID:  junctionID,
		logger:      logger,
		packets:     make(chan packet, queueSize),
		inventory:   bag.New[ChannelId, message](),
		registry:    make(map[PatternId]*patternRecord),
		index:       index.New[ChannelId, PatternId](),
		lastFired:   make(map[PatternId]*pseudotime.Counter[uint64]),
		msgCounter:  pseudotime.NewCounter[uint64](),
		openReplies: make(map[replyBreaker]struct{}),
	}
	if workerLimit > 0 {
		c.dispatchSem = make(chan struct{}, workerLimit)
	}
	return c
}

// run is the coordinator's packet loop. It returns once a shutdownRequest
// has been fully processed.
func (c *coordinator) run() {
	c.logger.junctionStarted(c.junctionID)
	for p := range c.packets {
		if done := c.handlePacket(p); done {
			return
		}
	}
}

func (c *coordinator) handlePacket(p packet) (shutdown bool) {
	switch v := p.(type) {
	case messagePacket:
		c.handleMessage(v)
	case newChannelIDRequest:
		v.reply <- c.channelIDs.allocateChannelID()
	case addPatternRequest:
		id := c.insertPattern(v.channelIDs, v.terminal, v.handler)
		v.reply <- addPatternResult{id: id}
	case shutdownRequest:
		c.shutdown()
		close(c.packets)
		close(v.done)
		return true
	}
	return false
}

func (c *coordinator) handleMessage(p messagePacket) {
	msg := message{channelID: p.channelID, payload: p.payload}
	c.inventory.Add(p.channelID, msg)
	if brk, ok := replyBreakerOf(p.payload); ok {
		c.openReplies[brk] = struct{}{}
	}
	c.msgCounter.Increment()

	candidates, ok := c.index.PeekAll(p.channelID)
	if !ok || len(candidates) == 0 {
		return
	}

	if chosen := c.selectToFire(candidates); chosen != nil {
		c.fire(chosen)
	}
}

// selectToFire narrows candidates to the alive ones and picks the one with
// the smallest last-fired value, treating never-fired as smaller than any
// fired value, with pattern-id ascending as the deterministic tie-break.
func (c *coordinator) selectToFire(candidates []PatternId) *patternRecord {
	var chosen *patternRecord
	var chosenLastFired *pseudotime.Counter[uint64]

	for _, id := range candidates {
		record, ok := c.registry[id]
		if !ok || !c.isAlive(record) {
			continue
		}

		lastFired := c.lastFired[id]
		if chosen == nil {
			chosen, chosenLastFired = record, lastFired
			continue
		}

		switch cmp := compareLastFired(lastFired, chosenLastFired); {
		case cmp < 0:
			chosen, chosenLastFired = record, lastFired
		case cmp == 0 && id < chosen.id:
			chosen, chosenLastFired = record, lastFired
		}
	}

	return chosen
}

// compareLastFired orders two optional last-fired values: absent (nil) is
// strictly less than any present value.
func compareLastFired(a, b *pseudotime.Counter[uint64]) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return a.Compare(*b)
	}
}

// isAlive reports whether every channel in record's list has at least as
// many queued messages as its multiplicity in the pattern requires.
func (c *coordinator) isAlive(record *patternRecord) bool {
	for channelID, required := range record.multiplicities() {
		if c.inventory.Count(channelID) < required {
			return false
		}
	}
	return true
}

// fire atomically consumes one message per channel in record's list (in
// list order, respecting multiplicity) and dispatches the handler on a
// fresh worker goroutine.
func (c *coordinator) fire(record *patternRecord) {
	messages := make([]message, 0, len(record.channelIDs))
	for _, channelID := range record.channelIDs {
		msg, ok := c.inventory.Retrieve(channelID)
		if !ok {
			// Unreachable under a correct isAlive check.
			return
		}
		if brk, ok := replyBreakerOf(msg.payload); ok {
			delete(c.openReplies, brk)
		}
		messages = append(messages, msg)
	}

	now := c.msgCounter.Clone()
	c.lastFired[record.id] = &now

	c.logger.patternFired(c.junctionID, record.id, record.channelIDs)

	c.workers.Add(1)
	go func() {
		defer c.workers.Done()
		if c.dispatchSem != nil {
			c.dispatchSem <- struct{}{}
			defer func() { <-c.dispatchSem }()
		}
		// record.handler recovers its own panics and converts them into a
		// broken reply (see pattern.go); this recover is a last-resort net
		// in case a future handler variant fails to, so a single bad
		// dispatch cannot silently kill a worker goroutine.
		defer func() {
			if r := recover(); r != nil {
				c.logger.handlerErrored(c.junctionID, record.id, panicToError(r))
			}
		}()
		if err := record.handler(c.junctionID, record.id, messages); err != nil {
			c.logger.handlerErrored(c.junctionID, record.id, err)
		}
	}()
}

func (c *coordinator) insertPattern(channelIDs []ChannelId, terminal terminalMode, handler patternHandler) PatternId {
	id := c.patternIDs.allocatePatternID()
	record := &patternRecord{
		id:         id,
		junctionID: c.junctionID,
		channelIDs: channelIDs,
		terminal:   terminal,
		handler:    handler,
	}
	c.registry[id] = record
	c.lastFired[id] = nil
	c.index.InsertMultiple(channelIDs, id)
	c.logger.patternRegistered(c.junctionID, id, channelIDs)
	return id
}

// shutdown breaks every outstanding reply endpoint so blocked synchronous
// consumers observe a BrokenReplyError rather than hanging forever, then
// waits for any already-dispatched handler goroutines to finish.
func (c *coordinator) shutdown() {
	for brk := range c.openReplies {
		cause := &BrokenReplyError{}
		brk.breakReply(cause)
		c.logger.replyBroken(c.junctionID, cause)
	}
	c.openReplies = nil
	c.workers.Wait()
	c.logger.junctionStopped(c.junctionID)
}
