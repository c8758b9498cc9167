// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

package perf

import "errors"

// Namespace prefixes all error messages of this package.
const Namespace = "perf"

var (
	// ErrOpen indicates that the counter resource could not be created, for
	// example because the event is unsupported on this machine or the kernel
	// denies access to performance counters.
	ErrOpen = errors.New(Namespace + ": cannot open counter")

	// ErrCounter indicates that an operation on an already-open counter
	// failed.
	ErrCounter = errors.New(Namespace + ": counter operation failed")

	// ErrClosed indicates use of a counter after Close.
	ErrClosed = errors.New(Namespace + ": counter is closed")
)
