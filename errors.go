// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package disruptor

import (
	"errors"

	"code.hybscloud.com/iox"
)

// ErrWouldBlock indicates a Try operation could not claim the requested
// sequences without waiting for consumers to free capacity.
//
// ErrWouldBlock is a control flow signal, not a failure. No sequence was
// claimed and no slot was touched; the caller decides whether to retry.
//
// This is an alias for [iox.ErrWouldBlock] for ecosystem consistency.
//
// Example:
//
//	backoff := iox.Backoff{}
//	for {
//	    _, err := rb.TryPublishEvent(tr)
//	    if err == nil {
//	        break
//	    }
//	    if disruptor.IsWouldBlock(err) {
//	        backoff.Wait()
//	        continue
//	    }
//	    return err
//	}
var ErrWouldBlock = iox.ErrWouldBlock

// ErrInvalidArgument reports a batch or claim request outside its bounds:
// non-positive sizes, a window past the end of the translator or argument
// slices, or a batch larger than the buffer. It is returned before any
// sequence is claimed. Returned errors wrap it with the offending values.
var ErrInvalidArgument = errors.New("disruptor: invalid argument")

// ErrAlerted reports that a [SequenceBarrier] was alerted while, or before,
// waiting. Callers treat it as shutdown, never as "not yet available".
var ErrAlerted = errors.New("disruptor: barrier alerted")

// IsWouldBlock reports whether err indicates the operation would block.
// Delegates to [iox.IsWouldBlock] for wrapped error support.
func IsWouldBlock(err error) bool {
	return iox.IsWouldBlock(err)
}

// IsSemantic reports whether err is a control flow signal (not a failure).
// Delegates to [iox.IsSemantic].
func IsSemantic(err error) bool {
	return iox.IsSemantic(err)
}

// IsNonFailure reports whether err represents a non-failure condition.
// Returns true for nil, ErrWouldBlock, or ErrMore.
// Delegates to [iox.IsNonFailure].
func IsNonFailure(err error) bool {
	return iox.IsNonFailure(err)
}

// IsAlerted reports whether err is, or wraps, [ErrAlerted].
func IsAlerted(err error) bool {
	return errors.Is(err, ErrAlerted)
}

// IsInvalidArgument reports whether err is, or wraps, [ErrInvalidArgument].
func IsInvalidArgument(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
