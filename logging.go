package join

import (
	"fmt"

	"github.com/joeycumines/logiface"
	"github.com/joeycumines/stumpy"
)

// logging wraps a *logiface.Logger[*stumpy.Event], recording the
// coordinator's lifecycle and pattern-matching events at Info level, a
// forced reply breakage at Warning level, and handler errors at Error
// level. A nil receiver (or one wrapping a nil logger) is a documented
// no-op, so the coordinator never needs to branch on whether logging is
// configured.
type logging struct {
	l *logiface.Logger[*stumpy.Event]
}

func newLogging(l *logiface.Logger[*stumpy.Event]) *logging {
	return &logging{l: l}
}

func (g *logging) junctionStarted(id JunctionId) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Info().
		Uint64(`junction`, uint64(id)).
		Log(`junction started`)
}

func (g *logging) junctionStopped(id JunctionId) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Info().
		Uint64(`junction`, uint64(id)).
		Log(`junction stopped`)
}

func (g *logging) patternRegistered(junctionID JunctionId, patternID PatternId, channelIDs []ChannelId) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Info().
		Uint64(`junction`, uint64(junctionID)).
		Uint64(`pattern`, uint64(patternID)).
		Str(`channels`, formatChannelIDs(channelIDs)).
		Log(`pattern registered`)
}

func (g *logging) patternFired(junctionID JunctionId, patternID PatternId, channelIDs []ChannelId) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Info().
		Uint64(`junction`, uint64(junctionID)).
		Uint64(`pattern`, uint64(patternID)).
		Str(`channels`, formatChannelIDs(channelIDs)).
		Log(`pattern fired`)
}

// replyBroken records a reply endpoint forced open by shutdown rather than
// by a handler delivering a value, per §5's mandated breakage behavior.
func (g *logging) replyBroken(junctionID JunctionId, cause error) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Warning().
		Uint64(`junction`, uint64(junctionID)).
		Err(cause).
		Log(`reply broken`)
}

func (g *logging) handlerErrored(junctionID JunctionId, patternID PatternId, err error) {
	if g == nil || g.l == nil {
		return
	}
	g.l.Err().
		Uint64(`junction`, uint64(junctionID)).
		Uint64(`pattern`, uint64(patternID)).
		Err(err).
		Log(`handler returned an error`)
}

func formatChannelIDs(ids []ChannelId) string {
	return fmt.Sprint(ids)
}
