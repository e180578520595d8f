// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"math/bits"

	"code.hybscloud.com/atomix"
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// MultiProducerSequencer is a [Sequencer] safe for any number of
// publishing goroutines.
//
// Producers claim with fetch-and-add (Next) or CAS (TryNext) on a claim
// sequence. Publication completes out of order: each producer records the
// lap in which it published its slots in a per-slot availability array,
// then advances the cursor through the contiguous run of published
// sequences above it. Whichever producer closes a gap carries the cursor
// past every later sequence already marked, so the cursor never exposes
// an unpublished slot.
//
// Availability marks and their scans use sequentially consistent atomics:
// of two producers publishing adjacent sequences concurrently, at least one
// observes the other's mark.
//
// Memory: 4 bytes of availability state per slot
type MultiProducerSequencer struct {
	_           cpu.CacheLinePad
	claimed     Sequence // Highest claimed sequence
	gatingCache Sequence // Cached minimum gating sequence
	cursor      Sequence // Highest contiguously published sequence
	_           cpu.CacheLinePad
	available   []atomix.Int32 // Lap that last published each slot
	mask        int64
	indexShift  uint
	sequencerBase
}

// NewMultiProducerSequencer creates a multi-producer sequencer.
// Panics if bufferSize is not a power of 2 or strategy is nil.
func NewMultiProducerSequencer(bufferSize int, strategy WaitStrategy) *MultiProducerSequencer {
	s := &MultiProducerSequencer{
		sequencerBase: newSequencerBase(bufferSize, strategy),
		available:     make([]atomix.Int32, bufferSize),
		mask:          int64(bufferSize - 1),
		indexShift:    uint(bits.TrailingZeros(uint(bufferSize))),
	}
	s.claimed.value.StoreRelaxed(InitialCursorValue)
	s.gatingCache.value.StoreRelaxed(InitialCursorValue)
	s.cursor.value.StoreRelaxed(InitialCursorValue)
	for i := range s.available {
		s.available[i].StoreRelaxed(-1)
	}
	return s
}

// Cursor returns the highest contiguously published sequence.
func (s *MultiProducerSequencer) Cursor() int64 {
	return s.cursor.Get()
}

// gatingMinimum is the claim watermark. The cursor bounds it so that no
// producer laps a slot whose earlier claim has not been published yet.
func (s *MultiProducerSequencer) gatingMinimum() int64 {
	return MinimumSequence(s.gating.load(), s.cursor.Get())
}

// Next claims one sequence, waiting while the ring is full.
func (s *MultiProducerSequencer) Next() int64 {
	return s.next(1)
}

// NextN claims n sequences, waiting while the ring lacks room, and returns
// the highest.
func (s *MultiProducerSequencer) NextN(n int) (int64, error) {
	if err := s.checkBatch(n); err != nil {
		return 0, err
	}
	return s.next(n), nil
}

func (s *MultiProducerSequencer) next(n int) int64 {
	nextSequence := s.claimed.AddAndGet(int64(n))
	current := nextSequence - int64(n)
	wrapPoint := nextSequence - int64(s.bufferSize)
	cached := s.gatingCache.Get()

	if wrapPoint > cached || cached > current {
		sw := spin.Wait{}
		gatingSequence := s.gatingMinimum()
		for wrapPoint > gatingSequence {
			sw.Once()
			gatingSequence = s.gatingMinimum()
		}
		s.gatingCache.Set(gatingSequence)
	}
	return nextSequence
}

// TryNext claims one sequence if room is available.
func (s *MultiProducerSequencer) TryNext() (int64, error) {
	return s.TryNextN(1)
}

// TryNextN claims n sequences if room is available.
func (s *MultiProducerSequencer) TryNextN(n int) (int64, error) {
	if err := s.checkBatch(n); err != nil {
		return 0, err
	}
	sw := spin.Wait{}
	for {
		current := s.claimed.Get()
		next := current + int64(n)
		if !s.hasAvailableCapacity(n, current) {
			return 0, ErrWouldBlock
		}
		if s.claimed.CompareAndSet(current, next) {
			return next, nil
		}
		sw.Once()
	}
}

// HasAvailableCapacity reports whether required sequences could be
// claimed without waiting.
func (s *MultiProducerSequencer) HasAvailableCapacity(required int) bool {
	return s.hasAvailableCapacity(required, s.claimed.Get())
}

func (s *MultiProducerSequencer) hasAvailableCapacity(required int, claimed int64) bool {
	wrapPoint := claimed + int64(required) - int64(s.bufferSize)
	cached := s.gatingCache.Get()

	if wrapPoint > cached || cached > claimed {
		minSequence := s.gatingMinimum()
		s.gatingCache.Set(minSequence)
		if wrapPoint > minSequence {
			return false
		}
	}
	return true
}

// RemainingCapacity returns the number of slots producers could claim.
func (s *MultiProducerSequencer) RemainingCapacity() int64 {
	consumed := s.gatingMinimum()
	produced := s.claimed.Get()
	return int64(s.bufferSize) - (produced - consumed)
}

// Claim moves both the claim sequence and the cursor to sequence.
func (s *MultiProducerSequencer) Claim(sequence int64) {
	s.claimed.Set(sequence)
	s.cursor.Set(sequence)
}

// Publish marks sequence available, advances the cursor as far as the
// contiguous published run reaches and wakes blocked consumers.
func (s *MultiProducerSequencer) Publish(sequence int64) {
	s.setAvailable(sequence)
	s.advanceCursor()
	s.signalAllWhenBlocking()
}

// PublishRange marks lo..hi available, then advances the cursor once.
func (s *MultiProducerSequencer) PublishRange(lo, hi int64) {
	for seq := lo; seq <= hi; seq++ {
		s.setAvailable(seq)
	}
	s.advanceCursor()
	s.signalAllWhenBlocking()
}

func (s *MultiProducerSequencer) setAvailable(sequence int64) {
	s.available[sequence&s.mask].Store(s.lap(sequence))
}

func (s *MultiProducerSequencer) lap(sequence int64) int32 {
	return int32(sequence >> s.indexShift)
}

// advanceCursor moves the cursor to the end of the contiguous run of
// available sequences above it. A failed CAS means another publisher
// moved the cursor; rescan from its new value.
func (s *MultiProducerSequencer) advanceCursor() {
	for {
		current := s.cursor.value.Load()
		highest := current
		for s.IsAvailable(highest + 1) {
			highest++
		}
		if highest == current {
			return
		}
		s.cursor.CompareAndSet(current, highest)
	}
}

// IsAvailable reports whether sequence was published in its own lap.
func (s *MultiProducerSequencer) IsAvailable(sequence int64) bool {
	return s.available[sequence&s.mask].Load() == s.lap(sequence)
}

// HighestPublishedSequence returns the highest sequence in
// lowerBound..availableSequence reachable from lowerBound without crossing
// an unpublished slot.
func (s *MultiProducerSequencer) HighestPublishedSequence(lowerBound, availableSequence int64) int64 {
	for seq := lowerBound; seq <= availableSequence; seq++ {
		if !s.IsAvailable(seq) {
			return seq - 1
		}
	}
	return availableSequence
}

// AddGatingSequences registers consumer sequences.
func (s *MultiProducerSequencer) AddGatingSequences(sequences ...*Sequence) {
	s.gating.add(&s.cursor, sequences...)
}

// RemoveGatingSequences deregisters sequences.
func (s *MultiProducerSequencer) RemoveGatingSequences(sequences ...*Sequence) bool {
	return s.gating.remove(sequences...)
}

// MinimumSequence returns the minimum of the gating sequences and the
// cursor.
func (s *MultiProducerSequencer) MinimumSequence() int64 {
	return s.gatingMinimum()
}

// NewBarrier creates a barrier on this sequencer's cursor.
func (s *MultiProducerSequencer) NewBarrier(dependents ...*Sequence) *SequenceBarrier {
	return newSequenceBarrier(s, s.strategy, &s.cursor, dependents)
}
