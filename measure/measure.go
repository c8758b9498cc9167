// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package measure adapts a hardware performance counter to a benchmark
// harness measurement contract, so benchmark results report deterministic
// event counts (instructions retired, cache misses, cycles) instead of noisy
// wall-clock time.
//
// The harness drives one [Measurement] per benchmark: Start before the
// benchmarked code, End after it, then Add, Zero, and ToF64 as pure
// accumulation over the collected values, and Formatter for display.
package measure

import (
	"fmt"
	"sync"
)

// Value is one iteration's accumulated event count.
type Value = uint64

// Intermediate is the token threaded from Start to its matching End. The
// counter itself holds the running state, so the token carries nothing and is
// fixed to zero; it exists to keep repeated start/end cycles symmetric with
// the harness's generic contract.
type Intermediate = uint64

// A Measurement produces and combines per-iteration values for a benchmark
// harness.
type Measurement interface {
	// Start begins a measurement and returns a token for the matching End.
	Start() Intermediate
	// End completes the measurement begun by Start and returns its value.
	End(i Intermediate) Value
	// Add combines two values. It is associative and commutative, with
	// Zero as its identity.
	Add(a, b Value) Value
	// Zero returns the identity value.
	Zero() Value
	// ToF64 widens a value for statistical processing.
	ToF64(v Value) float64
	// Formatter returns the display formatter for values of this
	// measurement.
	Formatter() ValueFormatter
}

// counter is the slice of the perf counter the adapter needs: a stateful,
// fallible resource with start/stop/read/reset semantics. *perf.Counter
// satisfies it.
type counter interface {
	Start() error
	Stop() error
	Read() (uint64, error)
	Reset() error
	Close() error
}

// Perf is a [Measurement] that counts one configured hardware event per
// iteration. It exclusively owns its counter; the mutex gives the shared
// method receivers a single-writer discipline, matching a harness that holds
// one adapter and never overlaps start/end pairs.
type Perf struct {
	mu sync.Mutex
	c  counter
}

var _ Measurement = (*Perf)(nil)

// Start starts the counter and returns the fixed sentinel token.
func (p *Perf) Start() Intermediate {
	p.mu.Lock()
	defer p.mu.Unlock()
	must(p.c.Start(), "start")
	return 0
}

// End stops the counter, reads the accumulated count, and resets the counter
// to zero. The order is mandatory: stopping first keeps in-flight activity
// out of the value, and resetting after the read makes every iteration's
// value self-contained rather than cumulative.
func (p *Perf) End(_ Intermediate) Value {
	p.mu.Lock()
	defer p.mu.Unlock()
	must(p.c.Stop(), "stop")
	v, err := p.c.Read()
	must(err, "read")
	must(p.c.Reset(), "reset")
	return v
}

// Add returns a + b. Overflow is not handled; a 64-bit event count is the
// realistic ceiling of the hardware.
func (p *Perf) Add(a, b Value) Value {
	return a + b
}

// Zero returns the identity for Add.
func (p *Perf) Zero() Value {
	return 0
}

// ToF64 widens v. Counts above 2^53 lose precision.
func (p *Perf) ToF64(v Value) float64 {
	return float64(v)
}

// Formatter returns the stateless event-count formatter. It is shared across
// calls and valid for the adapter's whole lifetime.
func (p *Perf) Formatter() ValueFormatter {
	return Formatter{}
}

// Close releases the underlying counter resource. The adapter must not be
// used after Close.
func (p *Perf) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.c.Close()
}

// must aborts the benchmark run when a counter operation fails. A counter
// failure is unrecoverable for measurement purposes: there is no retry and no
// fallback to wall-clock timing, because a silently wrong hardware-event
// measurement is worse than an explicit abort.
func must(err error, step string) {
	if err != nil {
		panic(fmt.Sprintf("measure: %s counter: %v", step, err))
	}
}
