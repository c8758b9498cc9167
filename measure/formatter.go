// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package measure

import "fmt"

// A ValueFormatter renders measured values for display and scales value
// slices for reporting. All operations are pure functions of their inputs;
// none of them touch the hardware counter.
type ValueFormatter interface {
	// FormatValue renders a raw event count.
	FormatValue(v float64) string
	// FormatThroughput renders v normalized by t.
	FormatThroughput(t Throughput, v float64) string
	// ScaleValues scales values in place for display against a typical
	// value and returns the unit label.
	ScaleValues(typical float64, values []float64) string
	// ScaleThroughputs scales values in place by the magnitude in t and
	// returns the unit label.
	ScaleThroughputs(typical float64, t Throughput, values []float64) string
	// ScaleForMachines scales values in place for machine-readable output
	// and returns the unit label.
	ScaleForMachines(values []float64) string
}

// Formatter renders raw event counts. It is stateless; the zero value is
// ready to use.
type Formatter struct{}

var _ ValueFormatter = Formatter{}

// FormatValue renders v with four decimals. The "cycles" label is a generic
// name for the raw event count and does not change with the configured
// event; cache misses also print as "cycles".
func (Formatter) FormatValue(v float64) string {
	return fmt.Sprintf("%.4f cycles", v)
}

// decimalDenominator returns the power-of-1000 denominator and unit label
// for a byte magnitude. A magnitude exactly on a boundary selects the larger
// unit: 1000 bytes scale as one kilobyte, not 1000 bytes.
func decimalDenominator(n uint64) (float64, string) {
	switch {
	case n < 1_000:
		return 1, "events/byte"
	case n < 1_000_000:
		return 1_000, "events/kilobyte"
	case n < 1_000_000_000:
		return 1_000_000, "events/megabyte"
	default:
		return 1_000_000_000, "events/gigabyte"
	}
}

// FormatThroughput renders v normalized by the magnitude in t, with four
// decimals and the unit selected by t's kind. For BytesDecimal the per-byte
// value is additionally divided by the decimal ladder denominator for t.N.
func (Formatter) FormatThroughput(t Throughput, v float64) string {
	switch t.Kind {
	case KindBytes:
		return fmt.Sprintf("%.4f events/byte", v/float64(t.N))
	case KindBytesDecimal:
		denom, unit := decimalDenominator(t.N)
		return fmt.Sprintf("%.4f %s", v/float64(t.N)/denom, unit)
	case KindElements:
		return fmt.Sprintf("%.4f events/element", v/float64(t.N))
	}
	panic(fmt.Sprintf("unhandled throughput kind %d", t.Kind))
}

// ScaleValues leaves values unscaled. Raw event counts are reported as is.
func (Formatter) ScaleValues(_ float64, _ []float64) string {
	return "events"
}

// ScaleThroughputs divides every element of values by the magnitude in t,
// and for BytesDecimal additionally by the decimal ladder denominator, then
// returns the matching unit label.
func (Formatter) ScaleThroughputs(_ float64, t Throughput, values []float64) string {
	switch t.Kind {
	case KindBytes:
		for i := range values {
			values[i] /= float64(t.N)
		}
		return "events/byte"
	case KindBytesDecimal:
		denom, unit := decimalDenominator(t.N)
		for i := range values {
			values[i] /= float64(t.N) * denom
		}
		return unit
	case KindElements:
		for i := range values {
			values[i] /= float64(t.N)
		}
		return "events/element"
	}
	panic(fmt.Sprintf("unhandled throughput kind %d", t.Kind))
}

// ScaleForMachines leaves values unscaled; machine-readable output wants raw
// counts.
func (Formatter) ScaleForMachines(_ []float64) string {
	return "events"
}
