// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package measure

import (
	"os"

	"github.com/jbreitbart/go-perfevents/perf"
)

// New creates a measurement for the event configured in b. The counter is
// bound to the current process and created disabled; the first Start enables
// it.
//
// Counter creation is a one-time setup step, not a per-iteration operation.
// If the event is unsupported or the kernel denies access, New panics rather
// than degrading to wall-clock timing.
func New(b *perf.Builder) *Perf {
	c, err := b.ForPID(os.Getpid()).Disable().Finish()
	must(err, "create")
	return &Perf{c: c}
}

// NewFromCounter wraps an already-open counter, which must be disabled and at
// zero. The adapter takes ownership; the counter is released by
// [Perf.Close]. Callers that want to handle open failures themselves, such as
// a harness that degrades per event, open the counter first and use this.
func NewFromCounter(c *perf.Counter) *Perf {
	return &Perf{c: c}
}
