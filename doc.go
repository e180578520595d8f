// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package disruptor provides a sequenced ring buffer for passing events
// between goroutines without locks on the hot path.
//
// Producers claim sequence numbers, write the preallocated slots those
// numbers map to, and publish them. Consumers wait on a barrier until a
// sequence is published, read the slots in order and advance their own
// progress sequence, which in turn gates how far producers may lap the
// ring.
//
// The package is built from four parts:
//
//   - Sequence: a cache-line isolated atomic counter
//   - WaitStrategy: how a consumer waits (busy-spin, yielding, sleeping, blocking)
//   - SequenceBarrier: "wait until sequence N is readable", with alert
//   - Sequencer: claim and publish for one (SingleProducerSequencer)
//     or many (MultiProducerSequencer) producers
//
// RingBuffer ties them to the slot storage and exposes translator-based
// publishing.
//
// # Quick Start
//
//	type Trade struct {
//	    Price int64
//	    Qty   int64
//	}
//
//	rb := disruptor.NewSingleProducer[Trade](nil, 1024, disruptor.NewYieldingWaitStrategy())
//
//	// Consumer registration
//	consumed := disruptor.NewSequence(disruptor.InitialCursorValue)
//	rb.AddGatingSequences(consumed)
//	barrier := rb.NewBarrier()
//
//	// Producer
//	setPrice := func(t *Trade, seq int64, price, qty int64) {
//	    t.Price, t.Qty = price, qty
//	}
//	disruptor.PublishEvent2(rb, setPrice, 101, 5)
//
//	// Consumer loop
//	next := consumed.Get() + 1
//	for {
//	    available, err := barrier.WaitFor(next)
//	    if disruptor.IsAlerted(err) {
//	        break // shutdown
//	    }
//	    for ; next <= available; next++ {
//	        handle(rb.Get(next))
//	    }
//	    consumed.Set(available)
//	}
//	rb.RemoveGatingSequences(consumed)
//
// # Publishing
//
// Every publish operation follows the same steps: validate, claim, write
// every slot in the claimed range, publish the range as one unit.
//
//	rb.PublishEvent(tr)                      // waits while full, never fails
//	rb.TryPublishEvent(tr)                   // ErrWouldBlock while full
//	rb.PublishEvents(trs, start, size)       // batch, waits while full
//	rb.TryPublishEvents(trs, start, size)    // batch, ErrWouldBlock while full
//
// Translators with typed arguments go through package functions, since Go
// methods take no type parameters:
//
//	disruptor.PublishEvent1(rb, tr, a)
//	disruptor.TryPublishEvents2(rb, tr, start, size, as, bs)
//
// Batch operations return [ErrInvalidArgument] before any claim when the
// window is empty, negative, larger than the ring, or runs past the end of
// a translator or argument slice. A rejected call leaves the cursor, the
// gating sequences and every slot unchanged.
//
// Consumers of a batch see all of it or none of it.
//
// # Direct Claim
//
// Producers that prefer to write slots themselves claim and publish
// explicitly:
//
//	seq := rb.Next()
//	ev := rb.Get(seq)
//	ev.Price = 100
//	rb.Publish(seq)
//
// Every claimed sequence must be published, even when writing fails.
// With multiple producers an unpublished claim holds back the cursor for
// everyone.
//
// # Wait Strategies
//
//	BusySpinWaitStrategy  - lowest latency, burns a core per consumer
//	YieldingWaitStrategy  - spins briefly, then yields the processor
//	SleepingWaitStrategy  - spins, yields, then backs off with sleeps
//	BlockingWaitStrategy  - parks on a condition variable
//
// Only the blocking strategy needs producers to wake consumers. It
// implements [Signaler], which the sequencers detect and call after every
// publish; the other strategies are never signalled.
//
// # Multiple Producers
//
// With [MultiProducerSequencer] producers may finish writing out of order.
// The cursor still advances only through a contiguous run of published
// sequences: if sequence 5 is claimed before 6 but 6 is published first,
// consumers see neither until 5 is published too.
//
// # Shutdown
//
// [SequenceBarrier.Alert] wakes every consumer waiting on the barrier and
// makes WaitFor return [ErrAlerted]. Treat it as a stop signal:
//
//	barrier.Alert()
//	// consumer loop observes ErrAlerted and returns
//
// A consumer that stops advancing its sequence without removing it from
// the gating set stalls every producer once the ring wraps.
//
// # Race Detection
//
// Slot payloads are plain memory protected by acquire-release ordering on
// sequences. Go's race detector cannot observe that ordering, nor atomix
// operations, and reports false positives. Concurrency tests are skipped
// when [RaceEnabled] is true.
//
// # Dependencies
//
// This package uses [code.hybscloud.com/atomix] for atomics with explicit
// memory ordering, [code.hybscloud.com/spin] for CPU pause in retry loops,
// [code.hybscloud.com/iox] for semantic errors and sleeping backoff, and
// [golang.org/x/sys/cpu] for cache-line padding.
package disruptor
