// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"strconv"

	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// InitialCursorValue is the value of a fresh cursor or consumer sequence:
// nothing has been published or consumed yet.
const InitialCursorValue int64 = -1

// SequenceReader is the read side of a sequence.
//
// Wait strategies observe the producer cursor and the consumer's dependent
// sequences through this interface, so a [FixedSequenceGroup] can stand in
// for a single [Sequence].
type SequenceReader interface {
	// Get returns the current value with acquire semantics.
	Get() int64
}

// Sequence is a monotonic 64-bit counter isolated on its own cache line.
//
// A Sequence is identified by its address, not its value. The producer
// cursor and every consumer progress marker is a Sequence. The zero value
// holds 0; use [NewSequence] with [InitialCursorValue] for a counter that
// has not yet seen any event.
//
// A Sequence must not be copied after first use.
type Sequence struct {
	_     cpu.CacheLinePad
	value atomix.Int64
	_     cpu.CacheLinePad
}

// NewSequence creates a sequence holding initial.
func NewSequence(initial int64) *Sequence {
	s := &Sequence{}
	s.value.StoreRelaxed(initial)
	return s
}

// Get returns the current value with acquire semantics.
func (s *Sequence) Get() int64 {
	return s.value.LoadAcquire()
}

// Set stores v with release semantics. Every write made before Set is
// visible to a reader whose Get observes v.
func (s *Sequence) Set(v int64) {
	s.value.StoreRelease(v)
}

// SetVolatile stores v with sequentially consistent ordering, so later
// loads by the caller cannot be reordered before the store.
func (s *Sequence) SetVolatile(v int64) {
	s.value.Store(v)
}

// CompareAndSet atomically replaces expected with v.
// Reports whether the swap happened.
func (s *Sequence) CompareAndSet(expected, v int64) bool {
	return s.value.CompareAndSwapAcqRel(expected, v)
}

// AddAndGet atomically adds delta and returns the new value.
func (s *Sequence) AddAndGet(delta int64) int64 {
	return s.value.AddAcqRel(delta)
}

// IncrementAndGet atomically adds one and returns the new value.
func (s *Sequence) IncrementAndGet() int64 {
	return s.value.AddAcqRel(1)
}

// String returns the current value in decimal.
func (s *Sequence) String() string {
	return strconv.FormatInt(s.Get(), 10)
}

// FixedSequenceGroup reads as the minimum of a fixed set of sequences.
//
// It is how a barrier depends on several upstream consumers at once.
// An empty group reads as math.MaxInt64.
type FixedSequenceGroup []*Sequence

// Get returns the minimum value across the group.
func (g FixedSequenceGroup) Get() int64 {
	return MinimumSequence(g, maxSequence)
}

const maxSequence int64 = 1<<63 - 1

// MinimumSequence returns the smallest value among seqs and minimum.
// Callers pass the cursor as minimum so an empty set yields the cursor.
func MinimumSequence(seqs []*Sequence, minimum int64) int64 {
	for _, s := range seqs {
		if v := s.Get(); v < minimum {
			minimum = v
		}
	}
	return minimum
}
