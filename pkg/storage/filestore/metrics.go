// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/gerdus/tusfs/pkg/debug"
)

var (
	// UploadsCreated tracks created upload resources
	UploadsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "uploads_created_total",
		Help:      "Total number of upload resources created",
	})

	// UploadsCompleted tracks uploads that reached their declared length
	UploadsCompleted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "uploads_completed_total",
		Help:      "Total number of uploads that reached their declared length",
	})

	// ChunkWrites tracks chunk write attempts by outcome
	ChunkWrites = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "chunk_writes_total",
		Help:      "Total number of chunk write attempts",
	}, []string{"outcome"}) // outcome: "committed", "checksum_mismatch", "offset_mismatch", "failed"

	// BytesCommitted tracks bytes committed to data artifacts
	BytesCommitted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "bytes_committed_total",
		Help:      "Total bytes committed to data artifacts",
	})

	// ChecksumFailures tracks rejected chunks with a digest mismatch
	ChecksumFailures = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "checksum_failures_total",
		Help:      "Total number of chunks rejected for a checksum mismatch",
	})

	// StagingCleaned tracks stale staging artifacts removed
	StagingCleaned = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "tusfs",
		Subsystem: "filestore",
		Name:      "staging_cleaned_total",
		Help:      "Total number of stale staging artifacts removed",
	})
)

func init() {
	debug.Registry().MustRegister(
		UploadsCreated,
		UploadsCompleted,
		ChunkWrites,
		BytesCommitted,
		ChecksumFailures,
		StagingCleaned,
	)
}
