// Package lifecycle holds shared constants for application start/stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds startup and shutdown work such as pinging the
// database or draining the HTTP server.
const DefaultTimeout = 30 * time.Second
