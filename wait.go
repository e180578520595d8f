// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"runtime"
	"sync"
	"time"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/spin"
)

// Alerter exposes the cancellation flag of a waiter.
// [SequenceBarrier] implements it.
type Alerter interface {
	IsAlerted() bool
}

// WaitStrategy decides how a consumer waits for a sequence to be published.
//
// WaitFor returns once dependent reads at least sequence, and returns the
// value it read, which may be higher than requested so the caller can drain
// a whole batch. cursor is the producer cursor; strategies that park on it
// use it to decide when to wake up. If the alert flag is raised before or
// during the wait, WaitFor returns [ErrAlerted].
//
// Strategies that park goroutines also implement [Signaler]; producers call
// it after every publish.
type WaitStrategy interface {
	WaitFor(sequence int64, cursor, dependent SequenceReader, alert Alerter) (int64, error)
}

// Signaler is implemented by wait strategies whose waiters must be woken
// explicitly after the cursor moves.
//
// The method is optional: sequencers and barriers type-assert once and skip
// the call for strategies that never park.
type Signaler interface {
	// SignalAllWhenBlocking wakes every goroutine parked in WaitFor.
	SignalAllWhenBlocking()
}

// BusySpinWaitStrategy re-reads the dependent sequence in a tight loop
// with a CPU pause between reads.
//
// Lowest latency, one fully busy core per waiting consumer. Use only when
// consumers are pinned and there are fewer of them than physical cores.
type BusySpinWaitStrategy struct{}

// NewBusySpinWaitStrategy creates a busy-spin strategy.
func NewBusySpinWaitStrategy() *BusySpinWaitStrategy {
	return &BusySpinWaitStrategy{}
}

// WaitFor spins until dependent reaches sequence or alert is raised.
func (*BusySpinWaitStrategy) WaitFor(sequence int64, _, dependent SequenceReader, alert Alerter) (int64, error) {
	sw := spin.Wait{}
	for {
		available := dependent.Get()
		if available >= sequence {
			return available, nil
		}
		if alert.IsAlerted() {
			return available, ErrAlerted
		}
		sw.Once()
	}
}

// DefaultYieldSpinTries is the number of spins [YieldingWaitStrategy]
// makes before it starts yielding the processor.
const DefaultYieldSpinTries = 100

// YieldingWaitStrategy spins a bounded number of times and then yields the
// processor on every further miss.
//
// Good latency without dedicating a core; CPU usage stays high while idle.
type YieldingWaitStrategy struct {
	spinTries int
}

// NewYieldingWaitStrategy creates a yielding strategy with
// [DefaultYieldSpinTries].
func NewYieldingWaitStrategy() *YieldingWaitStrategy {
	return &YieldingWaitStrategy{spinTries: DefaultYieldSpinTries}
}

// WaitFor spins, then yields, until dependent reaches sequence or alert
// is raised.
func (s *YieldingWaitStrategy) WaitFor(sequence int64, _, dependent SequenceReader, alert Alerter) (int64, error) {
	counter := s.spinTries
	for {
		available := dependent.Get()
		if available >= sequence {
			return available, nil
		}
		if alert.IsAlerted() {
			return available, ErrAlerted
		}
		if counter > 0 {
			counter--
			continue
		}
		runtime.Gosched()
	}
}

// Default phase lengths and sleep bounds of [SleepingWaitStrategy].
const (
	DefaultSleepSpinTries  = 100
	DefaultSleepYieldTries = 100
	DefaultSleepBase       = time.Microsecond
	DefaultSleepMax        = time.Millisecond
)

// SleepingWaitStrategy spins, then yields, then sleeps with increasing
// intervals.
//
// The sleep phase uses [iox.Backoff] bounded by a maximum interval, so an
// idle consumer costs almost no CPU and still observes new events or an
// alert within one interval. Suited to consumers that can tolerate some
// latency, such as asynchronous loggers.
type SleepingWaitStrategy struct {
	spinTries  int
	yieldTries int
	sleepBase  time.Duration
	sleepMax   time.Duration
}

// NewSleepingWaitStrategy creates a sleeping strategy with the default
// spin and yield phases and [DefaultSleepMax].
func NewSleepingWaitStrategy() *SleepingWaitStrategy {
	return NewSleepingWaitStrategyWith(DefaultSleepSpinTries, DefaultSleepYieldTries, DefaultSleepMax)
}

// NewSleepingWaitStrategyWith creates a sleeping strategy that spins
// spinTries times and yields yieldTries times before it starts sleeping,
// and never sleeps longer than maxSleep at a time.
// Negative tries are treated as zero; a non-positive maxSleep selects
// [DefaultSleepMax].
func NewSleepingWaitStrategyWith(spinTries, yieldTries int, maxSleep time.Duration) *SleepingWaitStrategy {
	if maxSleep <= 0 {
		maxSleep = DefaultSleepMax
	}
	return &SleepingWaitStrategy{
		spinTries:  max(spinTries, 0),
		yieldTries: max(yieldTries, 0),
		sleepBase:  min(DefaultSleepBase, maxSleep),
		sleepMax:   maxSleep,
	}
}

// WaitFor spins, yields, then sleeps until dependent reaches sequence or
// alert is raised.
func (s *SleepingWaitStrategy) WaitFor(sequence int64, _, dependent SequenceReader, alert Alerter) (int64, error) {
	spins, yields := s.spinTries, s.yieldTries
	sw := spin.Wait{}
	backoff := iox.Backoff{}
	backoff.SetBase(s.sleepBase)
	backoff.SetMax(s.sleepMax)
	for {
		available := dependent.Get()
		if available >= sequence {
			return available, nil
		}
		if alert.IsAlerted() {
			return available, ErrAlerted
		}
		switch {
		case spins > 0:
			spins--
			sw.Once()
		case yields > 0:
			yields--
			runtime.Gosched()
		default:
			backoff.Wait()
		}
	}
}

// BlockingWaitStrategy parks waiters on a condition variable until the
// cursor reaches the requested sequence.
//
// The zero value is ready to use.
//
// Lowest CPU usage while idle. Producers must call SignalAllWhenBlocking
// after publishing; the sequencers do this automatically. Once the cursor
// has passed, WaitFor spins on the dependent sequences, which trail the
// cursor only briefly.
type BlockingWaitStrategy struct {
	mu   sync.Mutex
	cond sync.Cond
}

// NewBlockingWaitStrategy creates a blocking strategy.
func NewBlockingWaitStrategy() *BlockingWaitStrategy {
	return &BlockingWaitStrategy{}
}

// lock acquires mu and binds cond to it on first use.
func (s *BlockingWaitStrategy) lock() {
	s.mu.Lock()
	if s.cond.L == nil {
		s.cond.L = &s.mu
	}
}

// WaitFor parks until cursor reaches sequence, then spins until dependent
// does. Returns [ErrAlerted] if alert is raised at any point.
func (s *BlockingWaitStrategy) WaitFor(sequence int64, cursor, dependent SequenceReader, alert Alerter) (int64, error) {
	if cursor.Get() < sequence {
		s.lock()
		for cursor.Get() < sequence {
			if alert.IsAlerted() {
				s.mu.Unlock()
				return cursor.Get(), ErrAlerted
			}
			s.cond.Wait()
		}
		s.mu.Unlock()
	}

	sw := spin.Wait{}
	for {
		available := dependent.Get()
		if available >= sequence {
			return available, nil
		}
		if alert.IsAlerted() {
			return available, ErrAlerted
		}
		sw.Once()
	}
}

// SignalAllWhenBlocking wakes every goroutine parked in WaitFor.
//
// The lock is taken so a waiter between its cursor check and cond.Wait
// cannot miss the broadcast.
func (s *BlockingWaitStrategy) SignalAllWhenBlocking() {
	s.lock()
	s.cond.Broadcast()
	s.mu.Unlock()
}

// signalerOf returns ws as a Signaler, or nil if it never parks.
func signalerOf(ws WaitStrategy) Signaler {
	if sig, ok := ws.(Signaler); ok {
		return sig
	}
	return nil
}
