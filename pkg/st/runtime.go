package st

import (
	"sync/atomic"

	"github.com/yaklabco/autoxbuild/internal/env"
)

// VerboseEnv is the environment variable that indicates the user requested
// verbose mode.
const VerboseEnv = "AUTOXBUILD_VERBOSE"

// DebugEnv is the environment variable that indicates the user requested
// debug mode.
const DebugEnv = "AUTOXBUILD_DEBUG"

//nolint:gochecknoglobals // Set once from the command line, read by the exec helpers.
var (
	verboseFlag atomic.Bool
	debugFlag   atomic.Bool
)

// SetVerbose turns verbose mode on or off for the rest of the process.
func SetVerbose(b bool) {
	verboseFlag.Store(b)
}

// SetDebug turns debug mode on or off for the rest of the process.
func SetDebug(b bool) {
	debugFlag.Store(b)
}

// Verbose reports whether autoxbuild was run with the verbose flag or env var.
func Verbose() bool {
	return verboseFlag.Load() || env.FailsafeParseBoolEnv(VerboseEnv, false)
}

// Debug reports whether autoxbuild was run with the debug flag or env var.
func Debug() bool {
	return debugFlag.Load() || env.FailsafeParseBoolEnv(DebugEnv, false)
}
