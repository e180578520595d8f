// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// EventFactory creates the value that preallocates one slot.
//
// The factory runs once per slot when the ring buffer is created. Slots are
// then reused in place for the lifetime of the buffer, so events should be
// mutable structs, not values that must be replaced.
type EventFactory[E any] func() E

// EventTranslator writes an event's fields into a preallocated slot.
//
// Translators are the only way producers touch slots through the publish
// operations. They receive the slot and the sequence it was claimed at and
// must not retain the pointer after returning.
//
// Example:
//
//	type Trade struct {
//	    Seq   int64
//	    Price int64
//	}
//
//	tr := func(t *Trade, seq int64) {
//	    t.Seq = seq
//	}
//	rb.PublishEvent(tr)
type EventTranslator[E any] func(event *E, sequence int64)

// EventTranslatorOneArg is an [EventTranslator] taking one caller argument.
// Publish with [PublishEvent1] and friends.
type EventTranslatorOneArg[E, A any] func(event *E, sequence int64, a A)

// EventTranslatorTwoArg is an [EventTranslator] taking two caller arguments.
// Publish with [PublishEvent2] and friends.
type EventTranslatorTwoArg[E, A, B any] func(event *E, sequence int64, a A, b B)

// EventTranslatorThreeArg is an [EventTranslator] taking three caller
// arguments. Publish with [PublishEvent3] and friends.
type EventTranslatorThreeArg[E, A, B, C any] func(event *E, sequence int64, a A, b B, c C)

// EventTranslatorVararg is an [EventTranslator] taking any number of
// untyped arguments. Prefer a fixed-arity translator on hot paths: the
// variadic call allocates its argument slice.
type EventTranslatorVararg[E any] func(event *E, sequence int64, args ...any)

// PollHandler consumes one event from an [EventPoller].
//
// endOfBatch is true for the last event currently available. Return false
// to stop the batch after this event, or an error to stop before
// acknowledging it.
type PollHandler[E any] func(event *E, sequence int64, endOfBatch bool) (more bool, err error)
