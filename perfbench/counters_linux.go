// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perfbench

import (
	"fmt"
	"sync"
	"testing"

	"github.com/jbreitbart/go-perfevents/events"
	"github.com/jbreitbart/go-perfevents/measure"
	"github.com/jbreitbart/go-perfevents/perf"
)

var defaultEvents = []events.Event{
	events.EventCPUCycles,
	events.EventInstructions,
	events.EventCacheMisses,
	events.EventCacheReferences,
}

type countersOS struct {
	b  testingB
	bN int

	events  []events.Event
	ms      []measure.Measurement // nil where the counter failed to open
	tokens  []measure.Intermediate
	totals  []measure.Value
	closers []interface{ Close() error }
	running bool
}

// testingB is the *testing.B interface needed by Counters. Used for testing.
type testingB interface {
	ReportMetric(n float64, unit string)
	Logf(format string, args ...any)
	Cleanup(func())
}

var printUnits = sync.OnceFunc(func() {
	// Print unit metadata.
	for _, event := range defaultEvents {
		// Currently all events are better=lower.
		fmt.Printf("Unit %s better=lower\n", event.String())
	}
	fmt.Printf("\n")
})

var openErrors sync.Map

func openOS(b *testing.B) *Counters {
	printUnits()
	return open(b, b.N, defaultEvents)
}

// OpenEvents is like [Open] with an explicit set of events instead of the
// default set.
func OpenEvents(b *testing.B, evs ...events.Event) *Counters {
	return open(b, b.N, evs)
}

func open(b testingB, bN int, evs []events.Event) *Counters {
	cs := &Counters{countersOS{
		b:      b,
		bN:     bN,
		events: evs,
		ms:     make([]measure.Measurement, len(evs)),
		tokens: make([]measure.Intermediate, len(evs)),
		totals: make([]measure.Value, len(evs)),
	}}

	for i, event := range evs {
		c, err := perf.NewBuilder(event).Disable().Finish()
		if err != nil {
			// Only report each error once, to avoid flooding the benchmark log.
			msg := fmt.Sprintf("error opening counter %s: %v", event, err)
			if _, prev := openErrors.Swap(msg, true); !prev {
				b.Logf("%s", msg)
			}
			continue
		}
		m := measure.NewFromCounter(c)
		cs.ms[i] = m
		cs.totals[i] = m.Zero()
		cs.closers = append(cs.closers, m)
	}

	b.Cleanup(cs.close)

	// Start all of the counters.
	cs.Start()

	return cs
}

func (cs *Counters) startOS() {
	if cs.running {
		return
	}
	for i, m := range cs.ms {
		if m == nil {
			continue
		}
		cs.tokens[i] = m.Start()
	}
	cs.running = true
}

func (cs *Counters) stopOS() {
	if !cs.running {
		return
	}
	for i, m := range cs.ms {
		if m == nil {
			continue
		}
		cs.totals[i] = m.Add(cs.totals[i], m.End(cs.tokens[i]))
	}
	cs.running = false
}

func (cs *Counters) resetOS() {
	for i, m := range cs.ms {
		if m == nil {
			continue
		}
		if cs.running {
			// Discard whatever accumulated since the last start.
			m.End(cs.tokens[i])
			cs.tokens[i] = m.Start()
		}
		cs.totals[i] = m.Zero()
	}
}

func (cs *Counters) totalOS(name string) (float64, bool) {
	for i, m := range cs.ms {
		if m == nil || cs.events[i].String() != name {
			continue
		}
		if cs.running {
			// Fold the in-flight count into the total and keep going.
			cs.totals[i] = m.Add(cs.totals[i], m.End(cs.tokens[i]))
			cs.tokens[i] = m.Start()
		}
		return m.ToF64(cs.totals[i]), true
	}
	return 0, false
}

func (cs *Counters) close() {
	if cs.b == nil {
		return
	}

	cs.stopOS()
	for i, m := range cs.ms {
		if m == nil {
			continue
		}
		cs.b.ReportMetric(m.ToF64(cs.totals[i])/float64(cs.bN), cs.events[i].String()+"/op")
	}
	for _, c := range cs.closers {
		c.Close()
	}
	cs.b = nil
}
