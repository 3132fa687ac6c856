// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package types

import (
	"crypto/sha1"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gerdus/tusfs/pkg/uperr"
)

func TestParseChecksum_Valid(t *testing.T) {
	t.Parallel()

	sum := sha1.Sum([]byte("abc"))
	decl := "sha1 " + base64.StdEncoding.EncodeToString(sum[:])

	c, err := ParseChecksum(decl)
	require.NoError(t, err)
	assert.Equal(t, ChecksumAlgoSHA1, c.Algo)
	assert.True(t, c.Matches(sum[:]))
	assert.False(t, c.Matches([]byte("something else")))
}

func TestParseChecksum_UnsupportedAlgorithm(t *testing.T) {
	t.Parallel()

	_, err := ParseChecksum("md5 CY9rzUYh03PK3k6DJie09g==")
	require.Error(t, err)
	assert.Equal(t, uperr.KindChecksumAlgorithmUnsupported, uperr.KindOf(err))
}

func TestParseChecksum_Malformed(t *testing.T) {
	t.Parallel()

	for _, decl := range []string{"sha1", "sha1 ", " digest", "sha1 not-base64!!"} {
		_, err := ParseChecksum(decl)
		require.Error(t, err, "declaration %q", decl)
		assert.Equal(t, uperr.KindChecksumAlgorithmUnsupported, uperr.KindOf(err), "declaration %q", decl)
	}
}
