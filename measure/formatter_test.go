// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatValue(t *testing.T) {
	var f Formatter
	assert.Equal(t, "2.0000 cycles", f.FormatValue(2))
	assert.Equal(t, "0.0000 cycles", f.FormatValue(0))
	assert.Equal(t, "1234.5679 cycles", f.FormatValue(1234.56789))
	// "cycles" is the generic raw-count label no matter which event was
	// configured.
	assert.Equal(t, "17.0000 cycles", f.FormatValue(17))
}

func TestFormatThroughput(t *testing.T) {
	var f Formatter

	tests := []struct {
		name string
		t    Throughput
		v    float64
		want string
	}{
		{"bytes", Bytes(512), 1024, "2.0000 events/byte"},
		{"bytes fractional", Bytes(3), 1, "0.3333 events/byte"},
		{"elements", Elements(4), 10, "2.5000 events/element"},
		{"decimal below kilo", BytesDecimal(500), 1000, "2.0000 events/byte"},
		{"decimal kilo", BytesDecimal(2_000), 4_000, "0.0020 events/kilobyte"},
		// Small post-scaling values round to 0.0000 at four decimals.
		{"decimal mega", BytesDecimal(2_000_000), 4_000_000, "0.0000 events/megabyte"},
		{"decimal giga", BytesDecimal(4_000_000_000), 8_000_000_000, "0.0000 events/gigabyte"},
	}
	for _, tc := range tests {
		assert.Equal(t, tc.want, f.FormatThroughput(tc.t, tc.v), tc.name)
	}
}

// TestDecimalLadderBoundaries pins the power-of-1000 unit selection: a
// magnitude exactly on a boundary takes the larger unit.
func TestDecimalLadderBoundaries(t *testing.T) {
	var f Formatter

	tests := []struct {
		n     uint64
		denom float64
		unit  string
	}{
		{999, 1, "events/byte"},
		{1_000, 1_000, "events/kilobyte"},
		{1_001, 1_000, "events/kilobyte"},
		{999_999, 1_000, "events/kilobyte"},
		{1_000_000, 1_000_000, "events/megabyte"},
		{1_000_001, 1_000_000, "events/megabyte"},
		{999_999_999, 1_000_000, "events/megabyte"},
		{1_000_000_000, 1_000_000_000, "events/gigabyte"},
		{1_000_000_001, 1_000_000_000, "events/gigabyte"},
	}
	for _, tc := range tests {
		// FormatThroughput and ScaleThroughputs share the ladder; both
		// must agree on the unit.
		got := f.FormatThroughput(BytesDecimal(tc.n), 0)
		assert.Equal(t, "0.0000 "+tc.unit, got, "format, n=%d", tc.n)

		values := []float64{float64(tc.n) * tc.denom}
		unit := f.ScaleThroughputs(0, BytesDecimal(tc.n), values)
		assert.Equal(t, tc.unit, unit, "scale, n=%d", tc.n)
		assert.InDelta(t, 1.0, values[0], 1e-9, "scale divides by n*denom, n=%d", tc.n)
	}
}

func TestScaleThroughputs(t *testing.T) {
	var f Formatter

	values := []float64{4, 8, 10}
	unit := f.ScaleThroughputs(8, Bytes(2), values)
	assert.Equal(t, "events/byte", unit)
	assert.Equal(t, []float64{2, 4, 5}, values)

	values = []float64{10, 25}
	unit = f.ScaleThroughputs(25, Elements(5), values)
	assert.Equal(t, "events/element", unit)
	assert.Equal(t, []float64{2, 5}, values)

	values = []float64{4_000_000}
	unit = f.ScaleThroughputs(0, BytesDecimal(2_000), values)
	assert.Equal(t, "events/kilobyte", unit)
	assert.Equal(t, []float64{2}, values)
}

func TestScaleValuesIsNoOp(t *testing.T) {
	var f Formatter

	values := []float64{1.5, 2_000_000, 0}
	assert.Equal(t, "events", f.ScaleValues(2_000_000, values))
	assert.Equal(t, []float64{1.5, 2_000_000, 0}, values, "values are untouched")

	assert.Equal(t, "events", f.ScaleForMachines(values))
	assert.Equal(t, []float64{1.5, 2_000_000, 0}, values, "values are untouched")
}

func TestUnhandledThroughputKindPanics(t *testing.T) {
	var f Formatter
	bogus := Throughput{Kind: ThroughputKind(99), N: 1}

	assert.Panics(t, func() { f.FormatThroughput(bogus, 1) })
	assert.Panics(t, func() { f.ScaleThroughputs(1, bogus, []float64{1}) })
}
