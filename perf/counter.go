// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Package perf opens and drives hardware performance counters through the
// perf_event_open interface of the Linux kernel. Each [Counter] owns a single
// counter resource for a single event; configure and open one with a
// [Builder].
package perf

import (
	"encoding/binary"
	"os"

	"github.com/ygrebnov/errorc"
	"golang.org/x/sys/unix"

	"github.com/jbreitbart/go-perfevents/events"
)

// A Counter is one open hardware performance counter. It accumulates the
// number of times its event occurred while the counter was running.
//
// A Counter is not safe for concurrent use. It moves between idle and
// running under Start and Stop; Close is terminal.
type Counter struct {
	event   events.Event
	f       *os.File
	running bool
}

// Event returns the event this counter observes.
func (c *Counter) Event() events.Event {
	return c.event
}

// Start enables the counter. It keeps accumulating from its current value;
// use Reset for a clean slate. Starting a running counter is a no-op.
func (c *Counter) Start() error {
	if c.f == nil {
		return ErrClosed
	}
	if c.running {
		return nil
	}
	if err := c.ioctl(unix.PERF_EVENT_IOC_ENABLE, "start"); err != nil {
		return err
	}
	c.running = true
	return nil
}

// Stop disables the counter. The accumulated value stays readable. Stopping
// a stopped counter is a no-op.
func (c *Counter) Stop() error {
	if c.f == nil {
		return ErrClosed
	}
	if !c.running {
		return nil
	}
	if err := c.ioctl(unix.PERF_EVENT_IOC_DISABLE, "stop"); err != nil {
		return err
	}
	c.running = false
	return nil
}

// Read returns the accumulated event count. Reading a running counter is
// allowed but includes any in-flight activity; stop first for a stable value.
func (c *Counter) Read() (uint64, error) {
	if c.f == nil {
		return 0, ErrClosed
	}
	var buf [8]byte
	if _, err := c.f.Read(buf[:]); err != nil {
		return 0, errorc.With(ErrCounter,
			errorc.String("step", "read"),
			errorc.String("event", c.event.String()),
			errorc.String("cause", err.Error()))
	}
	return binary.NativeEndian.Uint64(buf[:]), nil
}

// Reset sets the accumulated count back to zero. The running state is
// unchanged.
func (c *Counter) Reset() error {
	if c.f == nil {
		return ErrClosed
	}
	return c.ioctl(unix.PERF_EVENT_IOC_RESET, "reset")
}

// Close releases the counter resource. Close is idempotent; any other
// operation after Close reports [ErrClosed].
func (c *Counter) Close() error {
	if c == nil || c.f == nil {
		return nil
	}
	err := c.f.Close()
	c.f = nil
	return err
}

func (c *Counter) ioctl(req uint, step string) error {
	if _, err := unix.IoctlGetInt(int(c.f.Fd()), req); err != nil {
		return errorc.With(ErrCounter,
			errorc.String("step", step),
			errorc.String("event", c.event.String()),
			errorc.String("cause", err.Error()))
	}
	return nil
}
