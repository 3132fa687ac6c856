// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"bytes"
	"encoding/base64"
	"strings"

	"github.com/gerdus/tusfs/pkg/uperr"
)

// ChecksumAlgoSHA1 is the only digest algorithm the engine verifies.
const ChecksumAlgoSHA1 = "sha1"

// Checksum is a parsed chunk integrity declaration.
type Checksum struct {
	Algo string
	Sum  []byte
}

// ParseChecksum parses a declaration of the form "<algorithm> <base64-digest>".
// An unknown algorithm or a malformed declaration fails with
// KindChecksumAlgorithmUnsupported; the declaration is unusable either way
// and must be rejected before any bytes are committed.
func ParseChecksum(decl string) (*Checksum, error) {
	const op = "types.ParseChecksum"

	algo, b64, ok := strings.Cut(decl, " ")
	if !ok || algo == "" || b64 == "" {
		return nil, uperr.New(uperr.KindChecksumAlgorithmUnsupported, op, "malformed checksum declaration")
	}
	if algo != ChecksumAlgoSHA1 {
		return nil, uperr.Newf(uperr.KindChecksumAlgorithmUnsupported, op, "unsupported algorithm %q", algo)
	}
	sum, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, uperr.New(uperr.KindChecksumAlgorithmUnsupported, op, "digest is not valid base64")
	}
	return &Checksum{Algo: algo, Sum: sum}, nil
}

// Matches reports whether the computed digest equals the declared one.
func (c *Checksum) Matches(actual []byte) bool {
	return bytes.Equal(c.Sum, actual)
}
