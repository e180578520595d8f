// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"fmt"
	"math/bits"
	"slices"

	"code.hybscloud.com/atomix"
)

// Sequencer hands out sequence ranges to producers and tracks the consumers
// that gate them.
//
// A producer claims sequences with Next/NextN (blocking) or TryNext/TryNextN
// (non-blocking), writes the slots at those sequences, then makes them
// visible with Publish/PublishRange. No sequence is claimed while the slot
// it maps to may still be unread by the slowest gating sequence.
//
// Two implementations exist:
//
//	SingleProducerSequencer - one publishing goroutine, no atomics on claim
//	MultiProducerSequencer  - any number of publishing goroutines
type Sequencer interface {
	// BufferSize returns the ring capacity.
	BufferSize() int

	// Cursor returns the highest published sequence. Every sequence up to
	// and including it is readable.
	Cursor() int64

	// Next claims one sequence, waiting while the ring is full.
	Next() int64

	// NextN claims n contiguous sequences, waiting while the ring lacks
	// room, and returns the highest. The lowest is the result minus n-1.
	// Returns ErrInvalidArgument if n < 1 or n > BufferSize.
	NextN(n int) (int64, error)

	// TryNext claims one sequence if room is available.
	// Returns ErrWouldBlock, with no state changed, otherwise.
	TryNext() (int64, error)

	// TryNextN claims n contiguous sequences if room is available.
	// Returns ErrInvalidArgument if n < 1 or n > BufferSize, and
	// ErrWouldBlock when the ring lacks room. Neither changes state.
	TryNextN(n int) (int64, error)

	// Claim moves the producer to sequence without waiting.
	// Only for initialising a sequencer before any producer runs.
	Claim(sequence int64)

	// Publish makes the claimed sequence readable.
	Publish(sequence int64)

	// PublishRange makes the claimed sequences lo..hi readable as one unit.
	PublishRange(lo, hi int64)

	// IsAvailable reports whether sequence has been published and not yet
	// overwritten by a later lap.
	IsAvailable(sequence int64) bool

	// HasAvailableCapacity reports whether required sequences could be
	// claimed without waiting.
	HasAvailableCapacity(required int) bool

	// RemainingCapacity returns the number of slots producers could claim
	// right now.
	RemainingCapacity() int64

	// AddGatingSequences registers consumer sequences. Each is first moved
	// to the current cursor so it does not gate already published slots.
	AddGatingSequences(sequences ...*Sequence)

	// RemoveGatingSequences deregisters every registration of each of
	// sequences. Reports whether any of them was registered.
	RemoveGatingSequences(sequences ...*Sequence) bool

	// MinimumSequence returns the minimum across the gating sequences and
	// the cursor.
	MinimumSequence() int64

	// HighestPublishedSequence returns the highest sequence in
	// lowerBound..availableSequence such that every sequence from
	// lowerBound up to it is published. Returns lowerBound-1 when
	// lowerBound itself is not.
	HighestPublishedSequence(lowerBound, availableSequence int64) int64

	// NewBarrier creates a barrier that waits on the cursor and on
	// dependents, if any.
	NewBarrier(dependents ...*Sequence) *SequenceBarrier
}

// sequencerBase holds what both sequencer variants share: geometry, the
// wait strategy and the gating sequences.
type sequencerBase struct {
	bufferSize int
	strategy   WaitStrategy
	signaler   Signaler
	gating     gatingSequences
}

func newSequencerBase(bufferSize int, strategy WaitStrategy) sequencerBase {
	if bufferSize < 1 {
		panic("disruptor: bufferSize must not be less than 1")
	}
	if bits.OnesCount(uint(bufferSize)) != 1 {
		panic("disruptor: bufferSize must be a power of 2")
	}
	if strategy == nil {
		panic("disruptor: nil wait strategy")
	}
	return sequencerBase{
		bufferSize: bufferSize,
		strategy:   strategy,
		signaler:   signalerOf(strategy),
	}
}

// BufferSize returns the ring capacity.
func (s *sequencerBase) BufferSize() int {
	return s.bufferSize
}

func (s *sequencerBase) checkBatch(n int) error {
	if n < 1 || n > s.bufferSize {
		return fmt.Errorf("%w: n must be in [1, %d], got %d", ErrInvalidArgument, s.bufferSize, n)
	}
	return nil
}

func (s *sequencerBase) signalAllWhenBlocking() {
	if s.signaler != nil {
		s.signaler.SignalAllWhenBlocking()
	}
}

// gatingSequences is a copy-on-write set of consumer sequences.
//
// Producers read it on every capacity check; registration is rare. The
// slice behind the pointer is never modified after it is published.
type gatingSequences struct {
	p atomix.Pointer[[]*Sequence]
}

func (g *gatingSequences) load() []*Sequence {
	if p := g.p.LoadAcquire(); p != nil {
		return *p
	}
	return nil
}

func (g *gatingSequences) add(cursor SequenceReader, seqs ...*Sequence) {
	for {
		old := g.p.LoadAcquire()
		var cur []*Sequence
		if old != nil {
			cur = *old
		}
		next := make([]*Sequence, 0, len(cur)+len(seqs))
		next = append(next, cur...)
		c := cursor.Get()
		for _, s := range seqs {
			s.Set(c)
			next = append(next, s)
		}
		if g.p.CompareAndSwapAcqRel(old, &next) {
			break
		}
	}

	// The cursor may have moved between the read and the swap.
	c := cursor.Get()
	for _, s := range seqs {
		s.Set(c)
	}
}

func (g *gatingSequences) remove(seqs ...*Sequence) bool {
	for {
		old := g.p.LoadAcquire()
		if old == nil {
			return false
		}
		cur := *old
		next := make([]*Sequence, 0, len(cur))
		for _, s := range cur {
			if !slices.Contains(seqs, s) {
				next = append(next, s)
			}
		}
		if len(next) == len(cur) {
			return false
		}
		if g.p.CompareAndSwapAcqRel(old, &next) {
			return true
		}
	}
}
