// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strconv"
	"syscall"
	"unsafe"

	"github.com/ygrebnov/errorc"
	"golang.org/x/sys/unix"

	"github.com/jbreitbart/go-perfevents/events"
)

// A Builder configures and opens a [Counter]: pick an event, bind it to a
// process, choose the initial enable state. A Builder is consumed by Finish
// and must not be reused afterwards.
type Builder struct {
	event    events.Event
	pid      int
	disabled bool
}

// NewBuilder returns a Builder for the given event. Until ForPID overrides
// it, the counter observes the calling process on any CPU.
func NewBuilder(ev events.Event) *Builder {
	return &Builder{event: ev}
}

// ForPID binds the counter to the given process id. Zero means the calling
// process. Observing another user's process requires CAP_PERFMON.
func (b *Builder) ForPID(pid int) *Builder {
	b.pid = pid
	return b
}

// Disable configures the counter to be created disabled, so no events are
// counted until [Counter.Start] is called.
func (b *Builder) Disable() *Builder {
	b.disabled = true
	return b
}

// Finish opens the counter resource. Callers are expected to call
// [Counter.Close] when done with the Counter.
func (b *Builder) Finish() (*Counter, error) {
	if b.event == nil {
		return nil, errorc.With(ErrOpen, errorc.String("reason", "no event configured"))
	}

	attr := unix.PerfEventAttr{}
	attr.Size = uint32(unsafe.Sizeof(attr))
	if err := b.event.SetAttrs(&attr); err != nil {
		return nil, errorc.With(ErrOpen,
			errorc.String("event", b.event.String()),
			errorc.String("cause", err.Error()))
	}
	if b.disabled {
		attr.Bits = unix.PerfBitDisabled
	}

	fd, err := unix.PerfEventOpen(&attr, b.pid, -1, -1, unix.PERF_FLAG_FD_CLOEXEC)
	if err != nil {
		if errors.Is(err, syscall.EACCES) {
			const path = "/proc/sys/kernel/perf_event_paranoid"
			data, err2 := os.ReadFile(path)
			data = bytes.TrimSpace(data)
			if val, err3 := strconv.Atoi(string(data)); err2 != nil || err3 != nil || val > 0 {
				// We can't read it, or it's set to > 0.
				err = fmt.Errorf("%w (consider: echo 0 | sudo tee %s)", err, path)
			}
		}
		return nil, errorc.With(ErrOpen,
			errorc.String("event", b.event.String()),
			errorc.String("cause", err.Error()))
	}

	return &Counter{
		event: b.event,
		f:     os.NewFile(uintptr(fd), "<perf-event>"),
	}, nil
}
