// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package idgen provides the identifier-generation capability injected
// into the upload storage engine.
package idgen

import (
	"context"

	"github.com/google/uuid"
)

// Generator produces upload identifiers. Implementations must return
// identifiers that are unique within the storage root and safe to use as
// a single filename component.
type Generator interface {
	Generate(ctx context.Context) (string, error)
}

// GeneratorFunc adapts a function to the Generator interface.
type GeneratorFunc func(ctx context.Context) (string, error)

func (f GeneratorFunc) Generate(ctx context.Context) (string, error) {
	return f(ctx)
}

// UUID generates random (version 4) UUID identifiers.
type UUID struct{}

// NewUUID creates the default UUID-backed generator.
func NewUUID() *UUID {
	return &UUID{}
}

func (g *UUID) Generate(ctx context.Context) (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", err
	}
	return id.String(), nil
}
