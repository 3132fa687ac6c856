// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gerdus/tusfs/pkg/debug"
)

var (
	// EventsEmittedTotal tracks delivered notifications by type
	EventsEmittedTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "events",
		Name:      "emitted_total",
		Help:      "Total number of upload notifications delivered",
	}, []string{"type"})

	// EventsDroppedTotal tracks notifications dropped due to a full
	// buffer or a disabled emitter
	EventsDroppedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "events",
		Name:      "dropped_total",
		Help:      "Total number of upload notifications dropped",
	})
)

func init() {
	debug.Registry().MustRegister(
		EventsEmittedTotal,
		EventsDroppedTotal,
	)
}
