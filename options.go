// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import "math/bits"

// ProducerType selects the sequencer algorithm.
type ProducerType int

const (
	// ProducerMulti allows any number of publishing goroutines.
	ProducerMulti ProducerType = iota
	// ProducerSingle allows exactly one publishing goroutine.
	ProducerSingle
)

// String returns the producer type name.
func (p ProducerType) String() string {
	if p == ProducerSingle {
		return "SingleProducer"
	}
	return "MultiProducer"
}

// Options configures ring buffer creation.
type Options struct {
	producerType ProducerType
	strategy     WaitStrategy

	// Capacity (must be a power of 2)
	bufferSize int
}

// Builder creates ring buffers with fluent configuration.
//
// Defaults: multi-producer sequencer, [BlockingWaitStrategy].
//
// Example:
//
//	// Single producer, busy-spin consumers
//	rb := disruptor.Build[Trade](disruptor.New(1024).
//	    SingleProducer().
//	    WaitStrategy(disruptor.NewBusySpinWaitStrategy()))
//
//	// Multi producer with preallocated events
//	rb := disruptor.BuildWithFactory(disruptor.New(4096), NewOrder)
type Builder struct {
	opts Options
}

// New creates a builder for a ring buffer with bufferSize slots.
//
// Panics if bufferSize is not a positive power of 2.
func New(bufferSize int) *Builder {
	if bufferSize < 1 || bits.OnesCount(uint(bufferSize)) != 1 {
		panic("disruptor: bufferSize must be a power of 2")
	}
	return &Builder{opts: Options{bufferSize: bufferSize}}
}

// SingleProducer declares that only one goroutine will publish.
func (b *Builder) SingleProducer() *Builder {
	b.opts.producerType = ProducerSingle
	return b
}

// MultiProducer declares that several goroutines may publish concurrently.
// This is the default.
func (b *Builder) MultiProducer() *Builder {
	b.opts.producerType = ProducerMulti
	return b
}

// ProducerType sets the producer type explicitly.
func (b *Builder) ProducerType(p ProducerType) *Builder {
	b.opts.producerType = p
	return b
}

// WaitStrategy sets how consumers wait for published events.
// A nil strategy restores the default.
func (b *Builder) WaitStrategy(ws WaitStrategy) *Builder {
	b.opts.strategy = ws
	return b
}

// BuildSequencer creates the configured sequencer on its own, for callers
// that manage slot storage themselves.
func (b *Builder) BuildSequencer() Sequencer {
	ws := b.opts.strategy
	if ws == nil {
		ws = NewBlockingWaitStrategy()
	}
	if b.opts.producerType == ProducerSingle {
		return NewSingleProducerSequencer(b.opts.bufferSize, ws)
	}
	return NewMultiProducerSequencer(b.opts.bufferSize, ws)
}

// Build creates a RingBuffer[E] whose slots start at the zero value of E.
func Build[E any](b *Builder) *RingBuffer[E] {
	return NewRingBuffer[E](nil, b.BuildSequencer())
}

// BuildWithFactory creates a RingBuffer[E] whose slots are preallocated
// by factory.
func BuildWithFactory[E any](b *Builder, factory EventFactory[E]) *RingBuffer[E] {
	return NewRingBuffer(factory, b.BuildSequencer())
}
