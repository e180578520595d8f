// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor_test

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"code.hybscloud.com/disruptor"
)

// =============================================================================
// Test Helpers
// =============================================================================

// stubEvent is a slot holding one untyped value.
type stubEvent struct {
	value any
}

func newStubRingBuffer(t *testing.T) *disruptor.RingBuffer[stubEvent] {
	t.Helper()
	return disruptor.NewSingleProducer[stubEvent](nil, 4, disruptor.NewBlockingWaitStrategy())
}

func noArgTranslator(ev *stubEvent, seq int64) {
	ev.value = seq
}

func oneArgTranslator(ev *stubEvent, seq int64, a string) {
	ev.value = fmt.Sprintf("%s-%d", a, seq)
}

func twoArgTranslator(ev *stubEvent, seq int64, a, b string) {
	ev.value = fmt.Sprintf("%s%s-%d", a, b, seq)
}

func threeArgTranslator(ev *stubEvent, seq int64, a, b, c string) {
	ev.value = fmt.Sprintf("%s%s%s-%d", a, b, c, seq)
}

func varargTranslator(ev *stubEvent, seq int64, args ...any) {
	var sb strings.Builder
	for _, a := range args {
		sb.WriteString(a.(string))
	}
	ev.value = fmt.Sprintf("%s-%d", sb.String(), seq)
}

// assertRingBufferEvents checks every slot in order. A nil want means the
// slot was never written.
func assertRingBufferEvents(t *testing.T, rb *disruptor.RingBuffer[stubEvent], want ...any) {
	t.Helper()
	for i, w := range want {
		got := rb.Get(int64(i)).value
		if got != w {
			t.Fatalf("slot %d: got %v, want %v", i, got, w)
		}
	}
}

func assertEmptyRingBuffer(t *testing.T, rb *disruptor.RingBuffer[stubEvent]) {
	t.Helper()
	if c := rb.Cursor(); c != disruptor.InitialCursorValue {
		t.Fatalf("Cursor: got %d, want %d", c, disruptor.InitialCursorValue)
	}
	for i := range rb.BufferSize() {
		if v := rb.Get(int64(i)).value; v != nil {
			t.Fatalf("slot %d: got %v, want unset", i, v)
		}
	}
}

func skipIfRace(t *testing.T) {
	t.Helper()
	if disruptor.RaceEnabled {
		t.Skip("skip: race detector cannot observe atomix ordering")
	}
}

func repeat[T any](v T, n int) []T {
	s := make([]T, n)
	for i := range s {
		s[i] = v
	}
	return s
}

// =============================================================================
// Single Event Publishing
// =============================================================================

func TestPublishEventNoArg(t *testing.T) {
	rb := newStubRingBuffer(t)

	if seq := rb.PublishEvent(noArgTranslator); seq != 0 {
		t.Fatalf("PublishEvent: got seq %d, want 0", seq)
	}
	if seq, err := rb.TryPublishEvent(noArgTranslator); err != nil || seq != 1 {
		t.Fatalf("TryPublishEvent: got (%d, %v), want (1, nil)", seq, err)
	}

	assertRingBufferEvents(t, rb, int64(0), int64(1), nil, nil)
	if rb.Cursor() != 1 {
		t.Fatalf("Cursor: got %d, want 1", rb.Cursor())
	}
}

func TestPublishEventOneArg(t *testing.T) {
	rb := newStubRingBuffer(t)

	disruptor.PublishEvent1(rb, oneArgTranslator, "Foo")
	if _, err := disruptor.TryPublishEvent1(rb, oneArgTranslator, "Foo"); err != nil {
		t.Fatalf("TryPublishEvent1: %v", err)
	}

	assertRingBufferEvents(t, rb, "Foo-0", "Foo-1")
}

func TestPublishEventTwoArg(t *testing.T) {
	rb := newStubRingBuffer(t)

	disruptor.PublishEvent2(rb, twoArgTranslator, "Foo", "Bar")
	if _, err := disruptor.TryPublishEvent2(rb, twoArgTranslator, "Foo", "Bar"); err != nil {
		t.Fatalf("TryPublishEvent2: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBar-0", "FooBar-1")
}

func TestPublishEventThreeArg(t *testing.T) {
	rb := newStubRingBuffer(t)

	disruptor.PublishEvent3(rb, threeArgTranslator, "Foo", "Bar", "Baz")
	if _, err := disruptor.TryPublishEvent3(rb, threeArgTranslator, "Foo", "Bar", "Baz"); err != nil {
		t.Fatalf("TryPublishEvent3: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBarBaz-0", "FooBarBaz-1")
}

func TestPublishEventVararg(t *testing.T) {
	rb := newStubRingBuffer(t)

	rb.PublishEventVararg(varargTranslator, "Foo", "Bar", "Baz", "Bam")
	if _, err := rb.TryPublishEventVararg(varargTranslator, "Foo", "Bar", "Baz", "Bam"); err != nil {
		t.Fatalf("TryPublishEventVararg: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBarBazBam-0", "FooBarBazBam-1")
}

func TestPublishEventRoundTrip(t *testing.T) {
	type order struct {
		id    int64
		price int64
		side  string
	}
	rb := disruptor.NewMultiProducer[order](nil, 8, disruptor.NewYieldingWaitStrategy())
	tr := func(o *order, seq int64, price int64, side string) {
		o.id = seq
		o.price = price
		o.side = side
	}

	for i := range 5 {
		seq := disruptor.PublishEvent2(rb, tr, int64(100+i), "buy")
		got := *rb.Get(seq)
		want := order{id: seq, price: int64(100 + i), side: "buy"}
		if got != want {
			t.Fatalf("Get(%d): got %+v, want %+v", seq, got, want)
		}
	}
}

func TestTryPublishEventWhenFull(t *testing.T) {
	rb := newStubRingBuffer(t)
	consumer := disruptor.NewSequence(disruptor.InitialCursorValue)
	rb.AddGatingSequences(consumer)

	for range 4 {
		if _, err := rb.TryPublishEvent(noArgTranslator); err != nil {
			t.Fatalf("TryPublishEvent: %v", err)
		}
	}

	called := false
	_, err := rb.TryPublishEvent(func(ev *stubEvent, seq int64) {
		called = true
		ev.value = "overwritten"
	})
	if !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("TryPublishEvent on full: got %v, want ErrWouldBlock", err)
	}
	if called {
		t.Fatal("translator ran on a rejected publish")
	}
	if rb.Cursor() != 3 {
		t.Fatalf("Cursor: got %d, want 3", rb.Cursor())
	}
	if consumer.Get() != disruptor.InitialCursorValue {
		t.Fatalf("gating sequence moved: %d", consumer.Get())
	}
	assertRingBufferEvents(t, rb, int64(0), int64(1), int64(2), int64(3))

	// Consumer frees one slot
	consumer.Set(0)
	seq, err := rb.TryPublishEvent(noArgTranslator)
	if err != nil || seq != 4 {
		t.Fatalf("TryPublishEvent after consume: got (%d, %v), want (4, nil)", seq, err)
	}
	if v := rb.Get(4).value; v != int64(4) {
		t.Fatalf("slot 0 after wrap: got %v, want 4", v)
	}
}

func TestTryPublishEventArgsWhenFull(t *testing.T) {
	rb := newStubRingBuffer(t)
	rb.AddGatingSequences(disruptor.NewSequence(disruptor.InitialCursorValue))
	for range 4 {
		rb.PublishEvent(noArgTranslator)
	}

	if _, err := disruptor.TryPublishEvent1(rb, oneArgTranslator, "x"); !disruptor.IsWouldBlock(err) {
		t.Fatalf("TryPublishEvent1: got %v, want ErrWouldBlock", err)
	}
	if _, err := disruptor.TryPublishEvent2(rb, twoArgTranslator, "x", "y"); !disruptor.IsWouldBlock(err) {
		t.Fatalf("TryPublishEvent2: got %v, want ErrWouldBlock", err)
	}
	if _, err := disruptor.TryPublishEvent3(rb, threeArgTranslator, "x", "y", "z"); !disruptor.IsWouldBlock(err) {
		t.Fatalf("TryPublishEvent3: got %v, want ErrWouldBlock", err)
	}
	if _, err := rb.TryPublishEventVararg(varargTranslator, "x"); !disruptor.IsWouldBlock(err) {
		t.Fatalf("TryPublishEventVararg: got %v, want ErrWouldBlock", err)
	}
	assertRingBufferEvents(t, rb, int64(0), int64(1), int64(2), int64(3))
}

func TestPublishEventPanickingTranslatorStillPublishes(t *testing.T) {
	rb := disruptor.NewMultiProducer[stubEvent](nil, 4, disruptor.NewBlockingWaitStrategy())

	func() {
		defer func() {
			if r := recover(); r == nil {
				t.Fatal("expected translator panic to propagate")
			}
		}()
		rb.PublishEvent(func(ev *stubEvent, seq int64) {
			panic("translator failure")
		})
	}()

	if rb.Cursor() != 0 {
		t.Fatalf("Cursor after panic: got %d, want 0", rb.Cursor())
	}
	if seq := rb.PublishEvent(noArgTranslator); seq != 1 {
		t.Fatalf("PublishEvent after panic: got %d, want 1", seq)
	}
	if rb.Cursor() != 1 {
		t.Fatalf("Cursor: got %d, want 1", rb.Cursor())
	}
}

// =============================================================================
// Batch Publishing
// =============================================================================

func TestPublishEventsNoArg(t *testing.T) {
	rb := newStubRingBuffer(t)
	translators := repeat[disruptor.EventTranslator[stubEvent]](noArgTranslator, 2)

	if hi, err := rb.PublishEvents(translators, 0, 2); err != nil || hi != 1 {
		t.Fatalf("PublishEvents: got (%d, %v), want (1, nil)", hi, err)
	}
	if hi, err := rb.TryPublishEvents(translators, 0, 2); err != nil || hi != 3 {
		t.Fatalf("TryPublishEvents: got (%d, %v), want (3, nil)", hi, err)
	}

	assertRingBufferEvents(t, rb, int64(0), int64(1), int64(2), int64(3))
}

func TestTryPublishEventsLargerThanRingBuffer(t *testing.T) {
	rb := newStubRingBuffer(t)
	translators := repeat[disruptor.EventTranslator[stubEvent]](noArgTranslator, 5)

	_, err := rb.TryPublishEvents(translators, 0, 5)
	if !errors.Is(err, disruptor.ErrInvalidArgument) {
		t.Fatalf("TryPublishEvents(5 of 4): got %v, want ErrInvalidArgument", err)
	}
	assertEmptyRingBuffer(t, rb)

	_, err = rb.PublishEvents(translators, 0, 5)
	if !errors.Is(err, disruptor.ErrInvalidArgument) {
		t.Fatalf("PublishEvents(5 of 4): got %v, want ErrInvalidArgument", err)
	}
	assertEmptyRingBuffer(t, rb)
}

func TestPublishEventsBatchSizeOfOne(t *testing.T) {
	rb := newStubRingBuffer(t)
	translators := repeat[disruptor.EventTranslator[stubEvent]](noArgTranslator, 3)

	if _, err := rb.PublishEvents(translators, 0, 1); err != nil {
		t.Fatalf("PublishEvents: %v", err)
	}
	if _, err := rb.TryPublishEvents(translators, 0, 1); err != nil {
		t.Fatalf("TryPublishEvents: %v", err)
	}

	assertRingBufferEvents(t, rb, int64(0), int64(1), nil, nil)
}

func TestPublishEventsWithinBatch(t *testing.T) {
	rb := newStubRingBuffer(t)
	var fired []int
	translators := make([]disruptor.EventTranslator[stubEvent], 3)
	for i := range translators {
		translators[i] = func(ev *stubEvent, seq int64) {
			fired = append(fired, i)
			ev.value = seq
		}
	}

	hi, err := rb.PublishEvents(translators, 1, 2)
	if err != nil {
		t.Fatalf("PublishEvents: %v", err)
	}
	if hi != 1 || rb.Cursor() != 1 {
		t.Fatalf("PublishEvents: got hi=%d cursor=%d, want 1, 1", hi, rb.Cursor())
	}
	if len(fired) != 2 || fired[0] != 1 || fired[1] != 2 {
		t.Fatalf("fired translators: got %v, want [1 2]", fired)
	}

	if _, err := rb.TryPublishEvents(translators, 1, 2); err != nil {
		t.Fatalf("TryPublishEvents: %v", err)
	}
	assertRingBufferEvents(t, rb, int64(0), int64(1), int64(2), int64(3))
}

func TestPublishEventsOneArg(t *testing.T) {
	rb := newStubRingBuffer(t)

	if _, err := disruptor.PublishEvents1(rb, oneArgTranslator, 0, 2, []string{"Foo", "Foo"}); err != nil {
		t.Fatalf("PublishEvents1: %v", err)
	}
	if _, err := disruptor.TryPublishEvents1(rb, oneArgTranslator, 0, 2, []string{"Foo", "Foo"}); err != nil {
		t.Fatalf("TryPublishEvents1: %v", err)
	}

	assertRingBufferEvents(t, rb, "Foo-0", "Foo-1", "Foo-2", "Foo-3")
}

func TestPublishEventsOneArgWithinBatch(t *testing.T) {
	rb := newStubRingBuffer(t)
	args := []string{"A", "B", "C"}

	if _, err := disruptor.PublishEvents1(rb, oneArgTranslator, 1, 2, args); err != nil {
		t.Fatalf("PublishEvents1: %v", err)
	}
	if _, err := disruptor.TryPublishEvents1(rb, oneArgTranslator, 0, 1, args); err != nil {
		t.Fatalf("TryPublishEvents1: %v", err)
	}

	assertRingBufferEvents(t, rb, "B-0", "C-1", "A-2", nil)
}

func TestPublishEventsTwoArg(t *testing.T) {
	rb := newStubRingBuffer(t)
	a, b := []string{"Foo", "Foo"}, []string{"Bar", "Bar"}

	if _, err := disruptor.PublishEvents2(rb, twoArgTranslator, 0, 2, a, b); err != nil {
		t.Fatalf("PublishEvents2: %v", err)
	}
	if _, err := disruptor.TryPublishEvents2(rb, twoArgTranslator, 0, 2, a, b); err != nil {
		t.Fatalf("TryPublishEvents2: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBar-0", "FooBar-1", "FooBar-2", "FooBar-3")
}

func TestPublishEventsThreeArg(t *testing.T) {
	rb := newStubRingBuffer(t)
	a, b, c := []string{"Foo", "Foo"}, []string{"Bar", "Bar"}, []string{"Baz", "Baz"}

	if _, err := disruptor.PublishEvents3(rb, threeArgTranslator, 0, 2, a, b, c); err != nil {
		t.Fatalf("PublishEvents3: %v", err)
	}
	if _, err := disruptor.TryPublishEvents3(rb, threeArgTranslator, 0, 2, a, b, c); err != nil {
		t.Fatalf("TryPublishEvents3: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBarBaz-0", "FooBarBaz-1", "FooBarBaz-2", "FooBarBaz-3")
}

func TestPublishEventsVararg(t *testing.T) {
	rb := newStubRingBuffer(t)
	args := [][]any{
		{"Foo", "Bar", "Baz", "Bam"},
		{"Foo", "Bar", "Baz", "Bam"},
	}

	if _, err := rb.PublishEventsVararg(varargTranslator, 0, 2, args); err != nil {
		t.Fatalf("PublishEventsVararg: %v", err)
	}
	if _, err := rb.TryPublishEventsVararg(varargTranslator, 0, 2, args); err != nil {
		t.Fatalf("TryPublishEventsVararg: %v", err)
	}

	assertRingBufferEvents(t, rb, "FooBarBazBam-0", "FooBarBazBam-1", "FooBarBazBam-2", "FooBarBazBam-3")
}

func TestTryPublishEventsWhenFull(t *testing.T) {
	rb := newStubRingBuffer(t)
	rb.AddGatingSequences(disruptor.NewSequence(disruptor.InitialCursorValue))
	translators := repeat[disruptor.EventTranslator[stubEvent]](noArgTranslator, 3)

	if _, err := rb.PublishEvents(translators, 0, 3); err != nil {
		t.Fatalf("PublishEvents: %v", err)
	}

	// One slot left, two requested
	_, err := rb.TryPublishEvents(translators, 0, 2)
	if !errors.Is(err, disruptor.ErrWouldBlock) {
		t.Fatalf("TryPublishEvents: got %v, want ErrWouldBlock", err)
	}
	if rb.Cursor() != 2 {
		t.Fatalf("Cursor: got %d, want 2", rb.Cursor())
	}
	assertRingBufferEvents(t, rb, int64(0), int64(1), int64(2), nil)

	if hi, err := rb.TryPublishEvents(translators, 0, 1); err != nil || hi != 3 {
		t.Fatalf("TryPublishEvents(1): got (%d, %v), want (3, nil)", hi, err)
	}
}

// =============================================================================
// Batch Validation
// =============================================================================

func TestPublishEventsValidation(t *testing.T) {
	translators := repeat[disruptor.EventTranslator[stubEvent]](noArgTranslator, 3)
	args := []string{"Foo", "Foo", "Foo"}
	short := []string{"Foo"}
	varargs := [][]any{{"a"}, {"b"}, {"c"}}

	cases := []struct {
		name    string
		publish func(rb *disruptor.RingBuffer[stubEvent]) error
	}{
		{"zero batch size", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEvents(translators, 0, 0)
			return err
		}},
		{"try zero batch size", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEvents(translators, 0, 0)
			return err
		}},
		{"negative batch size", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEvents(translators, 0, -1)
			return err
		}},
		{"negative start", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEvents(translators, -1, 2)
			return err
		}},
		{"try negative start", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEvents(translators, -1, 2)
			return err
		}},
		{"window past end", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEvents(translators, 1, 3)
			return err
		}},
		{"try window past end", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEvents(translators, 1, 3)
			return err
		}},
		{"one arg past end", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.PublishEvents1(rb, oneArgTranslator, 1, 3, args)
			return err
		}},
		{"try one arg negative", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.TryPublishEvents1(rb, oneArgTranslator, -1, 2, args)
			return err
		}},
		{"two arg second slice short", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.PublishEvents2(rb, twoArgTranslator, 0, 2, args, short)
			return err
		}},
		{"try two arg first slice short", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.TryPublishEvents2(rb, twoArgTranslator, 0, 2, short, args)
			return err
		}},
		{"three arg third slice short", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.PublishEvents3(rb, threeArgTranslator, 0, 2, args, args, short)
			return err
		}},
		{"try three arg larger than ring", func(rb *disruptor.RingBuffer[stubEvent]) error {
			five := repeat("Foo", 5)
			_, err := disruptor.TryPublishEvents3(rb, threeArgTranslator, 0, 5, five, five, five)
			return err
		}},
		{"vararg past end", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEventsVararg(varargTranslator, 2, 2, varargs)
			return err
		}},
		{"try vararg zero", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEventsVararg(varargTranslator, 0, 0, varargs)
			return err
		}},
		{"start overflows window", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.PublishEvents(translators, math.MaxInt, 1)
			return err
		}},
		{"try start overflows window", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEvents(translators, math.MaxInt, 1)
			return err
		}},
		{"one arg start overflows window", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := disruptor.TryPublishEvents1(rb, oneArgTranslator, math.MaxInt-1, 2, args)
			return err
		}},
		{"try vararg start overflows window", func(rb *disruptor.RingBuffer[stubEvent]) error {
			_, err := rb.TryPublishEventsVararg(varargTranslator, math.MaxInt, 1, varargs)
			return err
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rb := newStubRingBuffer(t)
			err := tc.publish(rb)
			if !errors.Is(err, disruptor.ErrInvalidArgument) {
				t.Fatalf("got %v, want ErrInvalidArgument", err)
			}
			if !disruptor.IsInvalidArgument(err) {
				t.Fatalf("IsInvalidArgument(%v) = false", err)
			}
			assertEmptyRingBuffer(t, rb)
			if rb.RemainingCapacity() != 4 {
				t.Fatalf("RemainingCapacity: got %d, want 4", rb.RemainingCapacity())
			}
		})
	}
}

// =============================================================================
// Direct Claim and Diagnostics
// =============================================================================

func TestRingBufferDirectClaim(t *testing.T) {
	rb := disruptor.NewMultiProducer[stubEvent](nil, 8, disruptor.NewBusySpinWaitStrategy())

	seq := rb.Next()
	rb.Get(seq).value = "direct"
	if rb.IsPublished(seq) {
		t.Fatal("claimed sequence visible before Publish")
	}
	rb.Publish(seq)
	if !rb.IsPublished(seq) {
		t.Fatal("sequence not visible after Publish")
	}

	hi, err := rb.NextN(3)
	if err != nil {
		t.Fatalf("NextN: %v", err)
	}
	for s := hi - 2; s <= hi; s++ {
		rb.Get(s).value = s
	}
	if rb.Cursor() != 0 {
		t.Fatalf("Cursor before PublishRange: got %d, want 0", rb.Cursor())
	}
	rb.PublishRange(hi-2, hi)
	if rb.Cursor() != 3 {
		t.Fatalf("Cursor: got %d, want 3", rb.Cursor())
	}

	if seq, err := rb.TryNext(); err != nil || seq != 4 {
		t.Fatalf("TryNext: got (%d, %v), want (4, nil)", seq, err)
	}
	rb.Publish(4)
	if hi, err := rb.TryNextN(2); err != nil || hi != 6 {
		t.Fatalf("TryNextN: got (%d, %v), want (6, nil)", hi, err)
	}
	rb.PublishRange(5, 6)
}

func TestRingBufferFactoryPreallocates(t *testing.T) {
	type event struct {
		buf []byte
	}
	allocs := 0
	rb := disruptor.NewSingleProducer(func() event {
		allocs++
		return event{buf: make([]byte, 0, 64)}
	}, 16, disruptor.NewSleepingWaitStrategy())

	if allocs != 16 {
		t.Fatalf("factory calls: got %d, want 16", allocs)
	}
	for i := range 16 {
		if cap(rb.Get(int64(i)).buf) != 64 {
			t.Fatalf("slot %d not preallocated", i)
		}
	}

	// Slots are reused in place
	first := rb.Get(0)
	rb.PublishEvent(func(ev *event, seq int64) { ev.buf = append(ev.buf[:0], 'x') })
	if rb.Get(16) != first {
		t.Fatal("sequence 16 does not map to slot 0")
	}
}

func TestRingBufferCapacityDiagnostics(t *testing.T) {
	for _, mk := range []struct {
		name string
		new  func() *disruptor.RingBuffer[stubEvent]
	}{
		{"single", func() *disruptor.RingBuffer[stubEvent] {
			return disruptor.NewSingleProducer[stubEvent](nil, 4, disruptor.NewBlockingWaitStrategy())
		}},
		{"multi", func() *disruptor.RingBuffer[stubEvent] {
			return disruptor.NewMultiProducer[stubEvent](nil, 4, disruptor.NewBlockingWaitStrategy())
		}},
	} {
		t.Run(mk.name, func(t *testing.T) {
			rb := mk.new()
			consumer := disruptor.NewSequence(disruptor.InitialCursorValue)
			rb.AddGatingSequences(consumer)

			if rb.BufferSize() != 4 {
				t.Fatalf("BufferSize: got %d, want 4", rb.BufferSize())
			}
			if rb.RemainingCapacity() != 4 {
				t.Fatalf("RemainingCapacity: got %d, want 4", rb.RemainingCapacity())
			}
			rb.PublishEvent(noArgTranslator)
			rb.PublishEvent(noArgTranslator)
			if rb.RemainingCapacity() != 2 {
				t.Fatalf("RemainingCapacity: got %d, want 2", rb.RemainingCapacity())
			}
			if !rb.HasAvailableCapacity(2) || rb.HasAvailableCapacity(3) {
				t.Fatal("HasAvailableCapacity disagrees with RemainingCapacity")
			}
			if rb.MinimumGatingSequence() != disruptor.InitialCursorValue {
				t.Fatalf("MinimumGatingSequence: got %d", rb.MinimumGatingSequence())
			}

			consumer.Set(1)
			if rb.RemainingCapacity() != 4 {
				t.Fatalf("RemainingCapacity after consume: got %d, want 4", rb.RemainingCapacity())
			}
			if rb.MinimumGatingSequence() != 1 {
				t.Fatalf("MinimumGatingSequence: got %d, want 1", rb.MinimumGatingSequence())
			}

			if !rb.RemoveGatingSequences(consumer) {
				t.Fatal("RemoveGatingSequences: not registered")
			}
			if rb.RemoveGatingSequences(consumer) {
				t.Fatal("RemoveGatingSequences: removed twice")
			}
			if s := rb.String(); !strings.Contains(s, "bufferSize=4") {
				t.Fatalf("String: %q", s)
			}
		})
	}
}

func TestRingBufferConstructorPanics(t *testing.T) {
	cases := []struct {
		name string
		fn   func()
	}{
		{"zero size", func() { disruptor.NewSingleProducer[int](nil, 0, disruptor.NewBlockingWaitStrategy()) }},
		{"not power of two", func() { disruptor.NewMultiProducer[int](nil, 6, disruptor.NewBlockingWaitStrategy()) }},
		{"nil strategy", func() { disruptor.NewSingleProducer[int](nil, 8, nil) }},
		{"builder not power of two", func() { disruptor.New(3) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Fatal("expected panic")
				}
			}()
			tc.fn()
		})
	}
}
