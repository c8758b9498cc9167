// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"errors"
	"testing"

	"github.com/jbreitbart/go-perfevents/events"
)

func openTestCounter(t *testing.T, ev events.Event) *Counter {
	t.Helper()
	c, err := NewBuilder(ev).Disable().Finish()
	if err != nil {
		t.Skipf("cannot open counter: %v", err)
	}
	t.Cleanup(func() { c.Close() })
	return c
}

func TestCounterLifecycle(t *testing.T) {
	c := openTestCounter(t, events.EventInstructions)

	v, err := c.Read()
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if v != 0 {
		t.Fatalf("counter is %d before starting, want 0", v)
	}

	if err := c.Start(); err != nil {
		t.Fatal("start failed:", err)
	}
	for i := 0; i < 10000; i++ {
	}
	if err := c.Stop(); err != nil {
		t.Fatal("stop failed:", err)
	}

	v1, err := c.Read()
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if v1 == 0 {
		t.Fatal("counter is 0 after a busy loop")
	}
	t.Logf("counted %d instructions", v1)

	// A stopped counter must not move.
	v2, err := c.Read()
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if v2 != v1 {
		t.Fatalf("counter changed while stopped: %d then %d", v1, v2)
	}
}

func TestCounterReset(t *testing.T) {
	c := openTestCounter(t, events.EventInstructions)

	if err := c.Start(); err != nil {
		t.Fatal("start failed:", err)
	}
	for i := 0; i < 10000; i++ {
	}
	if err := c.Stop(); err != nil {
		t.Fatal("stop failed:", err)
	}
	if err := c.Reset(); err != nil {
		t.Fatal("reset failed:", err)
	}

	v, err := c.Read()
	if err != nil {
		t.Fatal("read failed:", err)
	}
	if v != 0 {
		t.Fatalf("counter is %d after reset, want 0", v)
	}
}

func TestCounterClosed(t *testing.T) {
	c := openTestCounter(t, events.EventInstructions)

	if err := c.Close(); err != nil {
		t.Fatal("close failed:", err)
	}
	// Close is idempotent.
	if err := c.Close(); err != nil {
		t.Fatal("second close failed:", err)
	}

	if err := c.Start(); !errors.Is(err, ErrClosed) {
		t.Errorf("Start after Close = %v, want ErrClosed", err)
	}
	if _, err := c.Read(); !errors.Is(err, ErrClosed) {
		t.Errorf("Read after Close = %v, want ErrClosed", err)
	}
	if err := c.Reset(); !errors.Is(err, ErrClosed) {
		t.Errorf("Reset after Close = %v, want ErrClosed", err)
	}
}

func TestBuilderNoEvent(t *testing.T) {
	_, err := NewBuilder(nil).Finish()
	if !errors.Is(err, ErrOpen) {
		t.Errorf("Finish with no event = %v, want ErrOpen", err)
	}
}
