// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package events delivers push-style upload notifications to the protocol
// layer over a buffered channel.
package events

import (
	"context"
	"time"

	"github.com/gerdus/tusfs/pkg/logger"
	"github.com/gerdus/tusfs/pkg/types"
)

// Type identifies an upload lifecycle event.
type Type string

const (
	// TypeUploadCreated fires once when an upload resource is created.
	TypeUploadCreated Type = "upload.created"

	// TypeUploadComplete fires once when an upload first reaches its
	// declared length.
	TypeUploadComplete Type = "upload.complete"
)

// Event is one upload notification.
type Event struct {
	Type      Type
	Upload    types.Upload
	Timestamp int64 // unix milliseconds
}

// Config configures the event emitter.
type Config struct {
	// BufferSize is the channel capacity. Events are dropped, not
	// blocked on, when the consumer falls behind. Defaults to 64.
	BufferSize int
}

// Emitter fans upload notifications out to a single consumer channel.
// Delivery is best-effort: a full buffer drops the event rather than
// stalling a storage operation.
type Emitter struct {
	ch      chan Event
	enabled bool
}

// NewEmitter creates an event emitter.
func NewEmitter(cfg Config) *Emitter {
	size := cfg.BufferSize
	if size <= 0 {
		size = 64
	}
	return &Emitter{ch: make(chan Event, size), enabled: true}
}

// NoopEmitter returns an emitter that drops all events. Use this when the
// embedding host does not consume notifications.
func NoopEmitter() *Emitter {
	return &Emitter{enabled: false}
}

// Events returns the consumer channel. Nil for a noop emitter.
func (e *Emitter) Events() <-chan Event {
	return e.ch
}

// IsEnabled returns whether the emitter delivers events.
func (e *Emitter) IsEnabled() bool {
	return e.enabled
}

// Emit queues an event for the consumer. Never blocks.
func (e *Emitter) Emit(ctx context.Context, typ Type, u types.Upload) {
	if !e.enabled {
		EventsDroppedTotal.Inc()
		return
	}

	ev := Event{
		Type:      typ,
		Upload:    u,
		Timestamp: time.Now().UnixMilli(),
	}

	select {
	case e.ch <- ev:
		EventsEmittedTotal.WithLabelValues(string(typ)).Inc()
	default:
		EventsDroppedTotal.Inc()
		logger.Ctx(ctx).Warn().
			Str("event", string(typ)).
			Str("upload_id", u.ID).
			Msg("event buffer full, dropping notification")
	}
}

// EmitUploadCreated emits a creation notification with the full record.
func (e *Emitter) EmitUploadCreated(ctx context.Context, u types.Upload) {
	e.Emit(ctx, TypeUploadCreated, u)
}

// EmitUploadComplete emits a completion notification with the full record.
func (e *Emitter) EmitUploadComplete(ctx context.Context, u types.Upload) {
	e.Emit(ctx, TypeUploadComplete, u)
}
