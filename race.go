// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

//go:build race

package disruptor

// RaceEnabled is true when the race detector is active.
// Used by tests to skip concurrent tests: atomix operations and slot payloads
// ordered by sequence publication look like plain memory accesses to the
// detector, which reports them as false positives.
const RaceEnabled = true
