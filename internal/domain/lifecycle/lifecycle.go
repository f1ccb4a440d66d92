// Package lifecycle holds shared timeouts for startup and shutdown hooks.
package lifecycle

import "time"

// DefaultTimeout bounds lifecycle operations such as the initial database
// ping and HTTP server shutdown.
const DefaultTimeout = 10 * time.Second
