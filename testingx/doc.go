// Package testingx provides testing utilities for outcall.
//
// # Overview
//
// testingx offers a recording logger implementing core/log.Logger so tests
// can assert on what components logged, notably the bridge's swallowed
// cancel-handle panics.
//
// # Usage
//
//	logger := testingx.NewMockLogger(t)
//	// ... exercise code ...
//	if logger.CountLevel("WARN") != 1 {
//		t.Error("expected one warning")
//	}
package testingx
