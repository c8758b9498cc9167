// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measure

// ThroughputKind discriminates the variants of [Throughput]. The set is
// closed: every switch over it handles all kinds explicitly and panics on
// anything else, so a new kind is an immediately visible break.
type ThroughputKind int

const (
	// KindBytes normalizes by a raw byte count.
	KindBytes ThroughputKind = iota
	// KindBytesDecimal normalizes by a byte count, scaled in powers of
	// 1000 (kilobyte, megabyte, gigabyte).
	KindBytesDecimal
	// KindElements normalizes by an element count.
	KindElements
)

// Throughput describes how to normalize a measured value: by the bytes or
// elements one iteration processed. It is a read-only input to formatting.
type Throughput struct {
	Kind ThroughputKind
	N    uint64
}

// Bytes reports that one iteration processes n bytes.
func Bytes(n uint64) Throughput {
	return Throughput{KindBytes, n}
}

// BytesDecimal reports that one iteration processes n bytes, displayed with
// power-of-1000 units.
func BytesDecimal(n uint64) Throughput {
	return Throughput{KindBytesDecimal, n}
}

// Elements reports that one iteration processes n elements.
func Elements(n uint64) Throughput {
	return Throughput{KindElements, n}
}
