// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// PollState is the outcome of [EventPoller.Poll].
type PollState int

const (
	// PollProcessing means at least one event was handed to the handler.
	PollProcessing PollState = iota
	// PollGating means events are published but an upstream gating
	// sequence has not released them yet.
	PollGating
	// PollIdle means nothing new has been published.
	PollIdle
)

// String returns the state name.
func (s PollState) String() string {
	switch s {
	case PollProcessing:
		return "Processing"
	case PollGating:
		return "Gating"
	case PollIdle:
		return "Idle"
	default:
		return "PollState(?)"
	}
}

// EventPoller is a pull-style consumer of a [RingBuffer].
//
// Unlike a barrier-driven loop, Poll never waits: it drains what is
// readable now and returns. The poller owns a [Sequence]; register it with
// [RingBuffer.AddGatingSequences] before the first Poll so producers do
// not lap it, and remove it when the poller is discarded.
//
// Poll must be called from one goroutine at a time.
type EventPoller[E any] struct {
	rb       *RingBuffer[E]
	sequence *Sequence
	gating   SequenceReader
}

// NewPoller creates a poller reading behind the cursor and behind every
// sequence in dependents.
func (rb *RingBuffer[E]) NewPoller(dependents ...*Sequence) *EventPoller[E] {
	p := &EventPoller[E]{
		rb:       rb,
		sequence: NewSequence(InitialCursorValue),
	}
	if len(dependents) == 0 {
		p.gating = cursorReader{rb.sequencer}
	} else {
		p.gating = dependencyReader{cursor: cursorReader{rb.sequencer}, group: FixedSequenceGroup(append([]*Sequence(nil), dependents...))}
	}
	return p
}

// Sequence returns the poller's progress sequence.
func (p *EventPoller[E]) Sequence() *Sequence {
	return p.sequence
}

// Poll hands every readable event to handler in sequence order.
//
// The poller's sequence advances once, after the batch, to the last event
// the handler accepted. If handler returns an error, the failing event is
// not acknowledged, the batch stops and the error is returned with
// PollProcessing.
func (p *EventPoller[E]) Poll(handler PollHandler[E]) (PollState, error) {
	current := p.sequence.Get()
	next := current + 1
	available := p.rb.sequencer.HighestPublishedSequence(next, p.gating.Get())

	if next > available {
		if p.rb.sequencer.Cursor() >= next {
			return PollGating, nil
		}
		return PollIdle, nil
	}

	processed := current
	defer func() { p.sequence.Set(processed) }()
	for seq := next; seq <= available; seq++ {
		more, err := handler(p.rb.Get(seq), seq, seq == available)
		if err != nil {
			return PollProcessing, err
		}
		processed = seq
		if !more {
			break
		}
	}
	return PollProcessing, nil
}

// cursorReader reads a sequencer's cursor as a SequenceReader.
type cursorReader struct {
	s Sequencer
}

func (r cursorReader) Get() int64 {
	return r.s.Cursor()
}

// dependencyReader reads as the minimum of the cursor and a group.
type dependencyReader struct {
	cursor cursorReader
	group  FixedSequenceGroup
}

func (r dependencyReader) Get() int64 {
	return MinimumSequence(r.group, r.cursor.Get())
}
