// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package events

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

// rawEvent is an event given directly by its attr fields rather than by a
// symbolic name.
type rawEvent struct {
	name    string
	typ     uint32
	config  uint64
	config1 uint64
	config2 uint64
}

func (e *rawEvent) String() string {
	return e.name
}

func (e *rawEvent) SetAttrs(a *unix.PerfEventAttr) error {
	a.Type = e.typ
	a.Config = e.config
	a.Ext1 = e.config1
	a.Ext2 = e.config2
	return nil
}

// symbolicEvents maps event names, including the aliases perf accepts on the
// command line, to their builtin descriptors.
var symbolicEvents struct {
	once sync.Once
	m    map[string]Event
}

func symbolicEvent(name string) (Event, bool) {
	symbolicEvents.once.Do(func() {
		m := make(map[string]Event)
		add := func(ev eventBasic, aliases ...string) {
			m[ev.name] = ev
			for _, alias := range aliases {
				m[alias] = ev
			}
		}
		// See parse-events.c:event_symbols_hw for the alias spellings.
		add(EventCPUCycles, "cycles")
		add(EventInstructions)
		add(EventCacheReferences)
		add(EventCacheMisses)
		add(EventBranches, "branch-instructions")
		add(EventBranchMisses)
		add(EventBusCycles)
		add(EventRefCPUCycles)
		add(EventCPUClock)
		add(EventTaskClock)
		add(EventPageFaults, "faults")
		add(EventContextSwitches, "cs")
		add(EventCPUMigrations, "migrations")
		add(EventMinorFaults)
		add(EventMajorFaults)
		add(EventAlignmentFaults)
		add(EventEmulationFaults)
		add(EventDummy)
		symbolicEvents.m = m
	})
	ev, ok := symbolicEvents.m[name]
	return ev, ok
}

// ParseEvent parses a perf-style event name. It accepts builtin symbolic
// names ("instructions", "cache-misses", "cycles"), raw encodings in perf's
// rNNN form with a hex config ("r1a2"), and parameter lists in the form
// cpu/config=N,config1=N,config2=N/ with decimal, hex, or octal values.
func ParseEvent(name string) (Event, error) {
	if ev, ok := symbolicEvent(name); ok {
		return ev, nil
	}
	if cfg, ok := parseRawEncoding(name); ok {
		return &rawEvent{name: name, typ: unix.PERF_TYPE_RAW, config: cfg}, nil
	}
	if strings.Count(name, "/") == 2 && !strings.HasPrefix(name, "/") && strings.HasSuffix(name, "/") {
		return parseParamEvent(name)
	}
	return nil, fmt.Errorf("unknown event %q", name)
}

// parseRawEncoding parses perf's rNNN raw hardware event syntax.
func parseRawEncoding(name string) (uint64, bool) {
	hex, ok := strings.CutPrefix(name, "r")
	if !ok || hex == "" {
		return 0, false
	}
	cfg, err := strconv.ParseUint(hex, 16, 64)
	if err != nil {
		return 0, false
	}
	return cfg, true
}

// parseParamEvent parses pmu/k=v,.../ events. Only the cpu PMU with direct
// config parameters is supported; dynamic PMUs from /sys are not resolved.
func parseParamEvent(name string) (Event, error) {
	pmu, rest, _ := strings.Cut(name, "/")
	if pmu != "cpu" {
		return nil, fmt.Errorf("event %q: unsupported PMU %q", name, pmu)
	}
	rest = strings.TrimSuffix(rest, "/")

	event := rawEvent{name: name, typ: unix.PERF_TYPE_RAW}
	for _, s := range strings.Split(rest, ",") {
		k, vs, ok := strings.Cut(s, "=")
		if k == "" {
			return nil, fmt.Errorf("event %q: missing parameter name in %q", name, s)
		}
		// A sole k is assumed to have a value of 1. See
		// https://www.kernel.org/doc/Documentation/ABI/testing/sysfs-bus-event_source-devices-events.
		v := uint64(1)
		if ok {
			// The value can be decimal, hex, or octal.
			var err error
			v, err = strconv.ParseUint(vs, 0, 64)
			if err != nil {
				return nil, fmt.Errorf("event %q: parameter %q not a number", name, s)
			}
		}
		switch k {
		case "config":
			event.config = v
		case "config1":
			event.config1 = v
		case "config2":
			event.config2 = v
		default:
			return nil, fmt.Errorf("event %q: unknown parameter %q", name, k)
		}
	}
	return &event, nil
}
