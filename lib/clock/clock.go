// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import "time"

// Clock abstracts the current time for testability. Production code
// injects Real(); tests inject Fake().
//
// Every production function that calls time.Now should take a Clock
// (or be a method on a struct with a Clock field) instead.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
}
