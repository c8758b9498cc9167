// Copyright 2025 The go-perfevents Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build linux

// Command fibbench measures two fibonacci implementations with a hardware
// performance counter instead of wall-clock time. It is mainly a demo of the
// measure package; run it with different -event values to compare how the
// implementations behave on instructions, cache misses, or branch misses.
package main

import (
	"flag"

	"github.com/schollz/progressbar/v3"
	log "github.com/sirupsen/logrus"

	"github.com/jbreitbart/go-perfevents/events"
	"github.com/jbreitbart/go-perfevents/measure"
	"github.com/jbreitbart/go-perfevents/perf"
)

var (
	eventName = flag.String("event", "instructions", "perf event to count (see perf list)")
	samples   = flag.Int("samples", 100, "measurement samples per implementation")
	iters     = flag.Int("iters", 100, "inner iterations per sample")
	fibArg    = flag.Int("n", 25, "fibonacci argument")
)

func fibonacciSlow(n int) int {
	if n < 2 {
		return 1
	}
	return fibonacciSlow(n-1) + fibonacciSlow(n-2)
}

func fibonacciFast(n int) int {
	a, b := 0, 1
	for i := 0; i < n; i++ {
		a, b = b, a+b
	}
	return b
}

// sink keeps the benchmarked calls from being optimized away.
var sink int

func main() {
	flag.Parse()

	ev, err := events.ParseEvent(*eventName)
	if err != nil {
		log.WithError(err).Fatal("unknown perf event")
	}

	log.WithFields(log.Fields{
		"event":   ev.String(),
		"samples": *samples,
		"iters":   *iters,
		"n":       *fibArg,
	}).Info("measuring fibonacci")

	run(ev, "slow", fibonacciSlow)
	run(ev, "fast", fibonacciFast)
}

func run(ev events.Event, name string, f func(int) int) {
	m := measure.New(perf.NewBuilder(ev))
	defer m.Close()
	formatter := m.Formatter()

	bar := progressbar.Default(int64(*samples), name)
	total := m.Zero()
	for s := 0; s < *samples; s++ {
		token := m.Start()
		for i := 0; i < *iters; i++ {
			sink = f(*fibArg)
		}
		total = m.Add(total, m.End(token))
		_ = bar.Add(1)
	}

	perSample := m.ToF64(total) / float64(*samples)
	log.WithFields(log.Fields{
		"function": name,
		"per_call": formatter.FormatValue(perSample / float64(*iters)),
		"rate":     formatter.FormatThroughput(measure.Elements(uint64(*iters)), perSample),
	}).Info("measured")
}
