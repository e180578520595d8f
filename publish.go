// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

// Fixed-arity publish operations. Go methods cannot take type parameters,
// so translators with typed arguments are published through these package
// functions. Semantics match the no-arg RingBuffer methods: the blocking
// forms wait for capacity, the Try forms return ErrWouldBlock instead, and
// batch forms validate every argument slice before claiming.

// PublishEvent1 publishes one event written by tr from a.
func PublishEvent1[E, A any](rb *RingBuffer[E], tr EventTranslatorOneArg[E, A], a A) int64 {
	seq := rb.sequencer.Next()
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a)
	return seq
}

// TryPublishEvent1 is PublishEvent1 without waiting.
func TryPublishEvent1[E, A any](rb *RingBuffer[E], tr EventTranslatorOneArg[E, A], a A) (int64, error) {
	seq, err := rb.sequencer.TryNext()
	if err != nil {
		return 0, err
	}
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a)
	return seq, nil
}

// PublishEvent2 publishes one event written by tr from a and b.
func PublishEvent2[E, A, B any](rb *RingBuffer[E], tr EventTranslatorTwoArg[E, A, B], a A, b B) int64 {
	seq := rb.sequencer.Next()
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a, b)
	return seq
}

// TryPublishEvent2 is PublishEvent2 without waiting.
func TryPublishEvent2[E, A, B any](rb *RingBuffer[E], tr EventTranslatorTwoArg[E, A, B], a A, b B) (int64, error) {
	seq, err := rb.sequencer.TryNext()
	if err != nil {
		return 0, err
	}
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a, b)
	return seq, nil
}

// PublishEvent3 publishes one event written by tr from a, b and c.
func PublishEvent3[E, A, B, C any](rb *RingBuffer[E], tr EventTranslatorThreeArg[E, A, B, C], a A, b B, c C) int64 {
	seq := rb.sequencer.Next()
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a, b, c)
	return seq
}

// TryPublishEvent3 is PublishEvent3 without waiting.
func TryPublishEvent3[E, A, B, C any](rb *RingBuffer[E], tr EventTranslatorThreeArg[E, A, B, C], a A, b B, c C) (int64, error) {
	seq, err := rb.sequencer.TryNext()
	if err != nil {
		return 0, err
	}
	defer rb.sequencer.Publish(seq)
	tr(rb.Get(seq), seq, a, b, c)
	return seq, nil
}

// PublishEvents1 publishes one event per element of
// a[batchStartsAt:batchStartsAt+batchSize] as a single batch.
func PublishEvents1[E, A any](rb *RingBuffer[E], tr EventTranslatorOneArg[E, A], batchStartsAt, batchSize int, a []A) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.NextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch1(rb, tr, batchStartsAt, batchSize, hi, a)
	return hi, nil
}

// TryPublishEvents1 is PublishEvents1 without waiting.
func TryPublishEvents1[E, A any](rb *RingBuffer[E], tr EventTranslatorOneArg[E, A], batchStartsAt, batchSize int, a []A) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.TryNextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch1(rb, tr, batchStartsAt, batchSize, hi, a)
	return hi, nil
}

func translateBatch1[E, A any](rb *RingBuffer[E], tr EventTranslatorOneArg[E, A], batchStartsAt, batchSize int, hi int64, a []A) {
	lo := hi - int64(batchSize-1)
	defer rb.sequencer.PublishRange(lo, hi)
	for i, seq := batchStartsAt, lo; seq <= hi; i, seq = i+1, seq+1 {
		tr(rb.Get(seq), seq, a[i])
	}
}

// PublishEvents2 publishes one event per index of the window over a and b
// as a single batch. Both slices must cover the window.
func PublishEvents2[E, A, B any](rb *RingBuffer[E], tr EventTranslatorTwoArg[E, A, B], batchStartsAt, batchSize int, a []A, b []B) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a), len(b)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.NextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch2(rb, tr, batchStartsAt, batchSize, hi, a, b)
	return hi, nil
}

// TryPublishEvents2 is PublishEvents2 without waiting.
func TryPublishEvents2[E, A, B any](rb *RingBuffer[E], tr EventTranslatorTwoArg[E, A, B], batchStartsAt, batchSize int, a []A, b []B) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a), len(b)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.TryNextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch2(rb, tr, batchStartsAt, batchSize, hi, a, b)
	return hi, nil
}

func translateBatch2[E, A, B any](rb *RingBuffer[E], tr EventTranslatorTwoArg[E, A, B], batchStartsAt, batchSize int, hi int64, a []A, b []B) {
	lo := hi - int64(batchSize-1)
	defer rb.sequencer.PublishRange(lo, hi)
	for i, seq := batchStartsAt, lo; seq <= hi; i, seq = i+1, seq+1 {
		tr(rb.Get(seq), seq, a[i], b[i])
	}
}

// PublishEvents3 publishes one event per index of the window over a, b and
// c as a single batch. All three slices must cover the window.
func PublishEvents3[E, A, B, C any](rb *RingBuffer[E], tr EventTranslatorThreeArg[E, A, B, C], batchStartsAt, batchSize int, a []A, b []B, c []C) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a), len(b), len(c)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.NextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch3(rb, tr, batchStartsAt, batchSize, hi, a, b, c)
	return hi, nil
}

// TryPublishEvents3 is PublishEvents3 without waiting.
func TryPublishEvents3[E, A, B, C any](rb *RingBuffer[E], tr EventTranslatorThreeArg[E, A, B, C], batchStartsAt, batchSize int, a []A, b []B, c []C) (int64, error) {
	if err := rb.checkBounds(batchStartsAt, batchSize, len(a), len(b), len(c)); err != nil {
		return 0, err
	}
	hi, err := rb.sequencer.TryNextN(batchSize)
	if err != nil {
		return 0, err
	}
	translateBatch3(rb, tr, batchStartsAt, batchSize, hi, a, b, c)
	return hi, nil
}

func translateBatch3[E, A, B, C any](rb *RingBuffer[E], tr EventTranslatorThreeArg[E, A, B, C], batchStartsAt, batchSize int, hi int64, a []A, b []B, c []C) {
	lo := hi - int64(batchSize-1)
	defer rb.sequencer.PublishRange(lo, hi)
	for i, seq := batchStartsAt, lo; seq <= hi; i, seq = i+1, seq+1 {
		tr(rb.Get(seq), seq, a[i], b[i], c[i])
	}
}
