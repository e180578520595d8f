// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"code.hybscloud.com/spin"
	"golang.org/x/sys/cpu"
)

// SingleProducerSequencer is a [Sequencer] for exactly one publishing
// goroutine.
//
// Claims are plain field updates owned by the producer; publication is a
// single release store of the cursor, so publish order equals claim order.
// The producer caches the slowest gating sequence and rescans the
// consumers only when a claim would pass the cached value.
//
// Calling claim or publish methods from more than one goroutine at a time
// corrupts the sequencer.
type SingleProducerSequencer struct {
	_           cpu.CacheLinePad
	nextValue   int64 // Highest claimed sequence (producer only)
	cachedValue int64 // Cached minimum gating sequence (producer only)
	_           cpu.CacheLinePad
	cursor      Sequence
	sequencerBase
}

// NewSingleProducerSequencer creates a single-producer sequencer.
// Panics if bufferSize is not a power of 2 or strategy is nil.
func NewSingleProducerSequencer(bufferSize int, strategy WaitStrategy) *SingleProducerSequencer {
	s := &SingleProducerSequencer{
		nextValue:     InitialCursorValue,
		cachedValue:   InitialCursorValue,
		sequencerBase: newSequencerBase(bufferSize, strategy),
	}
	s.cursor.value.StoreRelaxed(InitialCursorValue)
	return s
}

// Cursor returns the highest published sequence.
func (s *SingleProducerSequencer) Cursor() int64 {
	return s.cursor.Get()
}

// Next claims one sequence, waiting while the ring is full.
func (s *SingleProducerSequencer) Next() int64 {
	return s.next(1)
}

// NextN claims n sequences, waiting while the ring lacks room, and returns
// the highest.
func (s *SingleProducerSequencer) NextN(n int) (int64, error) {
	if err := s.checkBatch(n); err != nil {
		return 0, err
	}
	return s.next(n), nil
}

func (s *SingleProducerSequencer) next(n int) int64 {
	nextValue := s.nextValue
	nextSequence := nextValue + int64(n)
	wrapPoint := nextSequence - int64(s.bufferSize)
	cached := s.cachedValue

	if wrapPoint > cached || cached > nextValue {
		// Full fence: the cursor store must precede the gating loads.
		s.cursor.SetVolatile(nextValue)

		sw := spin.Wait{}
		minSequence := MinimumSequence(s.gating.load(), nextValue)
		for wrapPoint > minSequence {
			sw.Once()
			minSequence = MinimumSequence(s.gating.load(), nextValue)
		}
		s.cachedValue = minSequence
	}

	s.nextValue = nextSequence
	return nextSequence
}

// TryNext claims one sequence if room is available.
func (s *SingleProducerSequencer) TryNext() (int64, error) {
	return s.TryNextN(1)
}

// TryNextN claims n sequences if room is available.
func (s *SingleProducerSequencer) TryNextN(n int) (int64, error) {
	if err := s.checkBatch(n); err != nil {
		return 0, err
	}
	if !s.hasAvailableCapacity(n, true) {
		return 0, ErrWouldBlock
	}
	s.nextValue += int64(n)
	return s.nextValue, nil
}

// HasAvailableCapacity reports whether required sequences could be
// claimed without waiting.
func (s *SingleProducerSequencer) HasAvailableCapacity(required int) bool {
	return s.hasAvailableCapacity(required, false)
}

func (s *SingleProducerSequencer) hasAvailableCapacity(required int, doStore bool) bool {
	nextValue := s.nextValue
	wrapPoint := nextValue + int64(required) - int64(s.bufferSize)
	cached := s.cachedValue

	if wrapPoint > cached || cached > nextValue {
		if doStore {
			s.cursor.SetVolatile(nextValue)
		}
		minSequence := MinimumSequence(s.gating.load(), nextValue)
		s.cachedValue = minSequence
		if wrapPoint > minSequence {
			return false
		}
	}
	return true
}

// RemainingCapacity returns the number of slots the producer could claim.
func (s *SingleProducerSequencer) RemainingCapacity() int64 {
	nextValue := s.nextValue
	consumed := MinimumSequence(s.gating.load(), nextValue)
	return int64(s.bufferSize) - (nextValue - consumed)
}

// Claim moves the producer to sequence.
func (s *SingleProducerSequencer) Claim(sequence int64) {
	s.nextValue = sequence
}

// Publish makes sequence readable and wakes blocked consumers.
func (s *SingleProducerSequencer) Publish(sequence int64) {
	s.cursor.Set(sequence)
	s.signalAllWhenBlocking()
}

// PublishRange makes lo..hi readable. Claims are ordered, so advancing the
// cursor to hi publishes the whole range at once.
func (s *SingleProducerSequencer) PublishRange(_, hi int64) {
	s.Publish(hi)
}

// IsAvailable reports whether sequence is published and still in the ring.
func (s *SingleProducerSequencer) IsAvailable(sequence int64) bool {
	current := s.cursor.Get()
	return sequence <= current && sequence > current-int64(s.bufferSize)
}

// HighestPublishedSequence returns availableSequence: a single producer
// never leaves gaps below its cursor.
func (s *SingleProducerSequencer) HighestPublishedSequence(_, availableSequence int64) int64 {
	return availableSequence
}

// AddGatingSequences registers consumer sequences.
func (s *SingleProducerSequencer) AddGatingSequences(sequences ...*Sequence) {
	s.gating.add(&s.cursor, sequences...)
}

// RemoveGatingSequences deregisters sequences.
func (s *SingleProducerSequencer) RemoveGatingSequences(sequences ...*Sequence) bool {
	return s.gating.remove(sequences...)
}

// MinimumSequence returns the minimum of the gating sequences and the
// cursor.
func (s *SingleProducerSequencer) MinimumSequence() int64 {
	return MinimumSequence(s.gating.load(), s.cursor.Get())
}

// NewBarrier creates a barrier on this sequencer's cursor.
func (s *SingleProducerSequencer) NewBarrier(dependents ...*Sequence) *SequenceBarrier {
	return newSequenceBarrier(s, s.strategy, &s.cursor, dependents)
}
