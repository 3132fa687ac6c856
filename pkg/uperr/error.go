// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

// Package uperr defines the error taxonomy of the upload storage engine.
// Every failure crossing the engine boundary is an *Error carrying a Kind;
// the protocol layer owns the translation to wire-level responses and can
// use the HTTP status hints here as a starting point.
package uperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an engine failure.
type Kind int

const (
	KindNone Kind = iota

	// KindInvalidLength: creation supplied neither a declared length nor
	// the deferred flag, or both.
	KindInvalidLength

	// KindIdentifierGeneration: the injected identifier generator failed.
	KindIdentifierGeneration

	// KindStorageWrite: an I/O failure while creating or committing
	// durable artifacts.
	KindStorageWrite

	// KindChecksumAlgorithmUnsupported: the checksum declaration names an
	// algorithm other than the supported one, or is malformed.
	KindChecksumAlgorithmUnsupported

	// KindChecksumMismatch: the staged bytes do not hash to the declared
	// digest. The data artifact is untouched.
	KindChecksumMismatch

	// KindNotFound: no upload exists under the identifier.
	KindNotFound

	// KindArtifactVanished: metadata exists but the data artifact is gone.
	// Signals external interference, distinct from never-existed.
	KindArtifactVanished

	// KindOffsetMismatch: the supplied write offset differs from the
	// upload's current committed offset.
	KindOffsetMismatch

	// KindSizeExceeded: the chunk would push the upload past its declared
	// length.
	KindSizeExceeded
)

var kindInfo = map[Kind]struct {
	code   string
	status int
}{
	KindInvalidLength:                {"InvalidLength", http.StatusBadRequest},
	KindIdentifierGeneration:         {"IdentifierGenerationError", http.StatusInternalServerError},
	KindStorageWrite:                 {"StorageWriteError", http.StatusInternalServerError},
	KindChecksumAlgorithmUnsupported: {"ChecksumAlgorithmUnsupported", http.StatusBadRequest},
	KindChecksumMismatch:             {"ChecksumMismatch", 460},
	KindNotFound:                     {"NotFound", http.StatusNotFound},
	KindArtifactVanished:             {"ArtifactVanished", http.StatusGone},
	KindOffsetMismatch:               {"OffsetMismatch", http.StatusConflict},
	KindSizeExceeded:                 {"SizeExceeded", http.StatusRequestEntityTooLarge},
}

// Code returns the wire-stable name of the kind.
func (k Kind) Code() string {
	if info, ok := kindInfo[k]; ok {
		return info.code
	}
	return "InternalError"
}

// HTTPStatusCode returns the suggested HTTP status for the kind.
// 460 follows the tus checksum extension's non-standard mismatch code.
func (k Kind) HTTPStatusCode() int {
	if info, ok := kindInfo[k]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Error is the failure type returned by engine operations.
type Error struct {
	Kind    Kind
	Op      string // operation that failed, e.g. "filestore.Write"
	Message string
	Err     error // wrapped cause, may be nil
}

func (e *Error) Error() string {
	msg := e.Kind.Code()
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is match on Kind so callers can compare against
// sentinel errors built with New.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return e.Kind == t.Kind
}

// New builds an Error with a static message.
func New(kind Kind, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

// Newf builds an Error with a formatted message.
func Newf(kind Kind, op, format string, args ...any) *Error {
	return &Error{Kind: kind, Op: op, Message: fmt.Sprintf(format, args...)}
}

// Wrap builds an Error around a cause.
func Wrap(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// KindOf extracts the Kind from err, or KindNone when err is not an
// engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindNone
}
