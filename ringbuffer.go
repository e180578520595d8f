// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"fmt"

	"golang.org/x/sys/cpu"
)

// RingBuffer is a fixed-capacity ring of preallocated events indexed by
// sequence.
//
// Producers publish through translators: a publish operation claims
// sequences from the [Sequencer], lets the translator write each claimed
// slot in place, then publishes the claimed range as one unit. Consumers
// wait on a [SequenceBarrier] and read slots with Get, up to the sequence
// the barrier returned. Slot index is sequence & (BufferSize-1).
//
// No lock protects slot contents. A producer writes a slot only between
// claim and publish; a consumer reads it only after the barrier has shown
// it published, and must register its [Sequence] as a gating sequence so
// producers cannot overwrite what it has not read.
//
// Every publish operation runs its translator in a deferred-publish
// envelope: if a translator panics, the claimed range is still published
// before the panic propagates, so later producers are not stalled behind
// a hole.
type RingBuffer[E any] struct {
	_         cpu.CacheLinePad
	entries   []E
	mask      int64
	sequencer Sequencer
	_         cpu.CacheLinePad
}

// NewRingBuffer creates a ring buffer over sequencer.
// factory preallocates every slot; nil leaves slots at their zero value.
func NewRingBuffer[E any](factory EventFactory[E], sequencer Sequencer) *RingBuffer[E] {
	n := sequencer.BufferSize()
	rb := &RingBuffer[E]{
		entries:   make([]E, n),
		mask:      int64(n - 1),
		sequencer: sequencer,
	}
	if factory != nil {
		for i := range rb.entries {
			rb.entries[i] = factory()
		}
	}
	return rb
}

// NewSingleProducer creates a ring buffer for one publishing goroutine.
// Panics if bufferSize is not a power of 2 or strategy is nil.
func NewSingleProducer[E any](factory EventFactory[E], bufferSize int, strategy WaitStrategy) *RingBuffer[E] {
	return NewRingBuffer(factory, NewSingleProducerSequencer(bufferSize, strategy))
}

// NewMultiProducer creates a ring buffer for any number of publishing
// goroutines. Panics if bufferSize is not a power of 2 or strategy is nil.
func NewMultiProducer[E any](factory EventFactory[E], bufferSize int, strategy WaitStrategy) *RingBuffer[E] {
	return NewRingBuffer(factory, NewMultiProducerSequencer(bufferSize, strategy))
}

// Get returns the slot for sequence.
//
// Producers may write it between claim and publish; consumers may read it
// once a barrier has returned a sequence at or above it.
func (rb *RingBuffer[E]) Get(sequence int64) *E {
	return &rb.entries[sequence&rb.mask]
}

// Sequencer returns the sequencer driving this ring buffer.
func (rb *RingBuffer[E]) Sequencer() Sequencer {
	return rb.sequencer
}

// BufferSize returns the ring capacity.
func (rb *RingBuffer[E]) BufferSize() int {
	return len(rb.entries)
}

// Cursor returns the highest published sequence.
func (rb *RingBuffer[E]) Cursor() int64 {
	return rb.sequencer.Cursor()
}

// Next claims one sequence for direct slot access, waiting while the ring
// is full. The caller must Publish it.
func (rb *RingBuffer[E]) Next() int64 {
	return rb.sequencer.Next()
}

// NextN claims n sequences and returns the highest. The caller must
// PublishRange them.
func (rb *RingBuffer[E]) NextN(n int) (int64, error) {
	return rb.sequencer.NextN(n)
}

// TryNext claims one sequence if room is available.
func (rb *RingBuffer[E]) TryNext() (int64, error) {
	return rb.sequencer.TryNext()
}

// TryNextN claims n sequences if room is available.
func (rb *RingBuffer[E]) TryNextN(n int) (int64, error) {
	return rb.sequencer.TryNextN(n)
}

// Publish makes a sequence claimed with Next readable.
func (rb *RingBuffer[E]) Publish(sequence int64) {
	rb.sequencer.Publish(sequence)
}

// PublishRange makes sequences claimed with NextN readable.
func (rb *RingBuffer[E]) PublishRange(lo, hi int64) {
	rb.sequencer.PublishRange(lo, hi)
}

// IsPublished reports whether sequence is published and still in the ring.
func (rb *RingBuffer[E]) IsPublished(sequence int64) bool {
	return rb.sequencer.IsAvailable(sequence)
}

// HasAvailableCapacity reports whether required slots could be claimed
// without waiting.
func (rb *RingBuffer[E]) HasAvailableCapacity(required int) bool {
	return rb.sequencer.HasAvailableCapacity(required)
}

// RemainingCapacity returns the number of slots producers could claim.
func (rb *RingBuffer[E]) RemainingCapacity() int64 {
	return rb.sequencer.RemainingCapacity()
}

// AddGatingSequences registers consumer sequences.
func (rb *RingBuffer[E]) AddGatingSequences(sequences ...*Sequence) {
	rb.sequencer.AddGatingSequences(sequences...)
}

// RemoveGatingSequences deregisters consumer sequences. A consumer that
// stops without deregistering stalls every producer once the ring wraps.
func (rb *RingBuffer[E]) RemoveGatingSequences(sequences ...*Sequence) bool {
	return rb.sequencer.RemoveGatingSequences(sequences...)
}

// MinimumGatingSequence returns the slowest consumer's sequence, or the
// cursor if no consumer is registered.
func (rb *RingBuffer[E]) MinimumGatingSequence() int64 {
	return rb.sequencer.MinimumSequence()
}

// NewBarrier creates a barrier on the cursor and dependents.
func (rb *RingBuffer[E]) NewBarrier(dependents ...*Sequence) *SequenceBarrier {
	return rb.sequencer.NewBarrier(dependents...)
}

// String describes the buffer geometry and cursor.
func (rb *RingBuffer[E]) String() string {
	return fmt.Sprintf("RingBuffer{bufferSize=%d, cursor=%d, remaining=%d}",
		rb.BufferSize(), rb.Cursor(), rb.RemainingCapacity())
}

// PublishEvent claims the next sequence, lets tr write its slot and
// publishes it. Waits while the ring is full; never fails.
// Returns the published sequence.
func (rb *RingBuffer[E]) PublishEvent(tr EventTranslator[E]) int64 {
	seq := rb.sequencer.Next()
	rb.translateAndPublish(tr, seq)
	return seq
}

// TryPublishEvent is PublishEvent without waiting. Returns ErrWouldBlock,
// with no sequence claimed and no slot touched, if the ring is full.
func (rb *RingBuffer[E]) TryPublishEvent(tr EventTranslator[E]) (int64, error) {
	seq, err := rb.sequencer.TryNext()
	if err != nil {
		return 0, err
	}
	rb.translateAndPublish(tr, seq)
	return seq, nil
}

func (rb *RingBuffer[E]) translateAndPublish(tr EventTranslator[E], seq int64) {
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq)
}

// PublishEvents claims batchSize sequences, applies
// translators[batchStartsAt:batchStartsAt+batchSize] to them in order and
// publishes the batch as one unit. Waits while the ring lacks room.
//
// Returns the highest published sequence. Returns ErrInvalidArgument, with
// nothing claimed, if batchStartsAt < 0, batchSize < 1,
// batchSize > BufferSize or the window runs past the end of translators.
func (rb *RingBuffer[E]) PublishEvents(translators []EventTranslator[E], batchStartsAt, batchSize int) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(translators)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.NextN(batchSize)
	if err != nil {
		return 0, err
	}
	rb.translateAndPublishBatch(translators, batchStartsAt, batchSize, hi)
	return hi, nil
}

// TryPublishEvents is PublishEvents without waiting. Returns
// ErrInvalidArgument or ErrWouldBlock with the ring left untouched.
func (rb *RingBuffer[E]) TryPublishEvents(translators []EventTranslator[E], batchStartsAt, batchSize int) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(translators)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.TryNextN(batchSize)
	if err != nil {
		return 0, err
	}
	rb.translateAndPublishBatch(translators, batchStartsAt, batchSize, hi)
	return hi, nil
}

func (rb *RingBuffer[E]) translateAndPublishBatch(translators []EventTranslator[E], batchStartsAt, batchSize int, hi int64) {
	lo := hi - int64(batchSize-1)
	defer rb.sequencer.PublishRange(lo, hi)
	for i, seq := batchStartsAt, lo; seq <= hi; i, seq = i+1, seq+1 {
		translators[i](rb.Get(seq), seq)
	}
}

// PublishEventVararg is PublishEvent for a variadic translator.
func (rb *RingBuffer[E]) PublishEventVararg(tr EventTranslatorVararg[E], args ...any) int64 {
	seq := rb.sequencer.Next()
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, args...)
	return seq
}

// TryPublishEventVararg is TryPublishEvent for a variadic translator.
func (rb *RingBuffer[E]) TryPublishEventVararg(tr EventTranslatorVararg[E], args ...any) (int64, error) {
	seq, err := rb.sequencer.TryNext()
	if err != nil {
		return 0, err
	}
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, args...)
	return seq, nil
}

// PublishEventsVararg publishes one event per entry of
// args[batchStartsAt:batchStartsAt+batchSize], passing that entry's values
// to tr. Validation and waiting follow PublishEvents.
func (rb *RingBuffer[E]) PublishEventsVararg(tr EventTranslatorVararg[E], batchStartsAt, batchSize int, args [][]any) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(args)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.NextN(batchSize)
	if err != nil {
		return 0, err
	}
	rb.translateAndPublishVarargBatch(tr, batchStartsAt, batchSize, hi, args)
	return hi, nil
}

// TryPublishEventsVararg is PublishEventsVararg without waiting.
func (rb *RingBuffer[E]) TryPublishEventsVararg(tr EventTranslatorVararg[E], batchStartsAt, batchSize int, args [][]any) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(args)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.TryNextN(batchSize)
	if err != nil {
		return 0, err
	}
	rb.translateAndPublishVarargBatch(tr, batchStartsAt, batchSize, hi, args)
	return hi, nil
}

func (rb *RingBuffer[E]) translateAndPublishVarargBatch(tr EventTranslatorVararg[E], batchStartsAt, batchSize int, hi int64, args [][]any) {
	lo := hi - int64(batchSize-1)
	defer rb.sequencer.PublishRange(lo, hi)
	for i, seq := batchStartsAt, lo; seq <= hi; i, seq = i+1, seq+1 {
		tr(rb.Get(seq), seq, args[i]...)
	}
}

// checkBounds validates a batch window against the buffer and against
// every argument slice length in lengths.
func (rb *RingBuffer[E]) checkBounds(batchStartsAt, batchSize int, lengths ...int) error {
	if batchStartsAt < 0 || batchSize < 1 {
		return fmt.Errorf("%w: batchStartsAt must be >= 0 and batchSize > 0, got batchStartsAt=%d batchSize=%d",
			ErrInvalidArgument, batchStartsAt, batchSize)
	}
	if batchSize > len(rb.entries) {
		return fmt.Errorf("%w: batchSize %d exceeds bufferSize %d", ErrInvalidArgument, batchSize, len(rb.entries))
	}
	for _, n := range lengths {
		if batchStartsAt > n-batchSize {
			return fmt.Errorf("%w: batch [%d, %d) overruns %d elements",
				ErrInvalidArgument, batchStartsAt, batchStartsAt+batchSize, n)
		}
	}
	return nil
}
