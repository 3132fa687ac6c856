// Copyright 2026 tusfs Authors
// SPDX-License-Identifier: Apache-2.0

package filestore

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}
