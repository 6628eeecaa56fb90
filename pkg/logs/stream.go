package logs

import (
	"sync"
	"time"
)

// Stream is a lazy, pull-based chunk sequence over one scenario run. The
// consumer controls pacing by calling Next; cancellation is Close (or simply
// stopping, for undelayed streams, since Close only matters for releasing the
// pacing timer). A stream is not restartable mid-flight: re-invoke the
// generator with the same scenario to replay from the top.
type Stream struct {
	src   *lineSource
	delay time.Duration

	done      chan struct{}
	closeOnce sync.Once
}

// NewStream starts a stream for one scenario run. Infinite scenarios produce
// a sequence with no natural end; the consumer must Close it.
func (g *Generator) NewStream(workflow string, sc Scenario, tasks []string) *Stream {
	return &Stream{
		src:   g.newLineSource(workflow, sc, tasks),
		delay: sc.Features.StreamDelay,
		done:  make(chan struct{}),
	}
}

// Next blocks for the scenario's pacing delay and returns the next chunk.
// ok=false means the stream is exhausted or closed.
func (s *Stream) Next() (string, bool) {
	select {
	case <-s.done:
		return "", false
	default:
	}

	if s.delay > 0 {
		t := time.NewTimer(s.delay)
		select {
		case <-t.C:
		case <-s.done:
			t.Stop()
			return "", false
		}
	}

	line, ok := s.src.next()
	if !ok {
		return "", false
	}
	return line + "\n", true
}

// Close cancels the stream. Safe to call more than once.
func (s *Stream) Close() {
	s.closeOnce.Do(func() {
		close(s.done)
	})
}
