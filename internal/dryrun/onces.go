//nolint:gochecknoglobals // Once/mutex patterns.
package dryrun

import "sync"

var (
	mu sync.Mutex

	// Once-protected variables for whether the user requested dryrun mode.
	dryRunRequestedValue    bool
	dryRunRequestedEnvValue bool
	dryRunRequestedEnvOnce  sync.Once
)
