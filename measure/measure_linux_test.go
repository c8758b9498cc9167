// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package measure

import (
	"slices"
	"testing"

	"github.com/jbreitbart/go-perfevents/events"
	"github.com/jbreitbart/go-perfevents/perf"
)

// openInstructions returns an adapter for the instructions-retired event,
// skipping when the kernel denies perf access.
func openInstructions(t *testing.T) *Perf {
	t.Helper()
	c, err := perf.NewBuilder(events.EventInstructions).Disable().Finish()
	if err != nil {
		t.Skipf("cannot open counter: %v", err)
	}
	p := NewFromCounter(c)
	t.Cleanup(func() { p.Close() })
	return p
}

var busySink int

func busyLoop(n int) {
	for i := 0; i < n; i++ {
		busySink += i
	}
}

// TestInstructionsReproducible checks that a fixed-length loop counts a
// nonzero number of instructions, and counts about the same number again on
// a repeated run.
func TestInstructionsReproducible(t *testing.T) {
	p := openInstructions(t)

	const loopIters = 100000
	sample := func() float64 {
		tok := p.Start()
		busyLoop(loopIters)
		return p.ToF64(p.End(tok))
	}

	// Single samples are occasionally inflated by preemption, so compare
	// the medians of two runs rather than two raw samples.
	run := func() float64 {
		vals := make([]float64, 25)
		for i := range vals {
			vals[i] = sample()
		}
		slices.Sort(vals)
		return vals[len(vals)/2]
	}

	m1 := run()
	m2 := run()
	t.Logf("medians: %f and %f instructions", m1, m2)

	// The loop body is at least one instruction per iteration.
	if m1 < loopIters || m2 < loopIters {
		t.Fatalf("loop of %d iterations measured %f and %f instructions", loopIters, m1, m2)
	}

	const slack = 1.2
	if m1 > m2*slack || m2 > m1*slack {
		t.Errorf("repeated runs disagree beyond tolerance: %f vs %f instructions", m1, m2)
	}
}
