// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"code.hybscloud.com/atomix"
	"golang.org/x/sys/cpu"
)

// SequenceBarrier coordinates a consumer with the producer cursor and the
// consumers it depends on.
//
// A barrier is created by [Sequencer.NewBarrier]. WaitFor blocks according
// to the wait strategy until the requested sequence is readable, where
// readable means published by producers and already processed by every
// dependent sequence. Without dependents the cursor alone decides.
//
// Alert is the cooperative shutdown signal: it interrupts a WaitFor in
// progress and makes every later WaitFor fail with [ErrAlerted] until
// ClearAlert is called.
type SequenceBarrier struct {
	_         cpu.CacheLinePad
	alerted   atomix.Bool
	_         cpu.CacheLinePad
	sequencer Sequencer
	strategy  WaitStrategy
	signaler  Signaler
	cursor    SequenceReader
	dependent SequenceReader
}

func newSequenceBarrier(sequencer Sequencer, strategy WaitStrategy, cursor *Sequence, dependents []*Sequence) *SequenceBarrier {
	b := &SequenceBarrier{
		sequencer: sequencer,
		strategy:  strategy,
		signaler:  signalerOf(strategy),
		cursor:    cursor,
	}
	if len(dependents) == 0 {
		b.dependent = cursor
	} else {
		b.dependent = FixedSequenceGroup(append([]*Sequence(nil), dependents...))
	}
	return b
}

// WaitFor waits until sequence is readable and returns the highest
// readable sequence, which is at least sequence on success.
//
// Returns [ErrAlerted] if the barrier is alerted before or during the wait.
// A strategy may return early with a lower value; callers then retry.
func (b *SequenceBarrier) WaitFor(sequence int64) (int64, error) {
	if err := b.CheckAlert(); err != nil {
		return InitialCursorValue, err
	}

	available, err := b.strategy.WaitFor(sequence, b.cursor, b.dependent, b)
	if err != nil {
		return available, err
	}
	if available < sequence {
		return available, nil
	}
	return b.sequencer.HighestPublishedSequence(sequence, available), nil
}

// Cursor returns the producer's published cursor.
func (b *SequenceBarrier) Cursor() int64 {
	return b.cursor.Get()
}

// IsAlerted reports whether the barrier has been alerted.
func (b *SequenceBarrier) IsAlerted() bool {
	return b.alerted.LoadAcquire()
}

// Alert raises the alert flag and wakes parked waiters so they observe it.
func (b *SequenceBarrier) Alert() {
	b.alerted.StoreRelease(true)
	if b.signaler != nil {
		b.signaler.SignalAllWhenBlocking()
	}
}

// ClearAlert lowers the alert flag.
func (b *SequenceBarrier) ClearAlert() {
	b.alerted.StoreRelease(false)
}

// CheckAlert returns [ErrAlerted] if the barrier is alerted.
func (b *SequenceBarrier) CheckAlert() error {
	if b.IsAlerted() {
		return ErrAlerted
	}
	return nil
}
