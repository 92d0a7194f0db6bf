package prettylog

import (
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
)

// SetupPrettyLogger installs a charmbracelet/log handler as the slog default
// and returns it. When debug is set the level is lowered to debug and the
// caller location is reported.
func SetupPrettyLogger(writerForLogger io.Writer, debug bool) *log.Logger {
	logHandler := log.NewWithOptions(
		writerForLogger,
		log.Options{
			// Default level. Callers can use SetLevel on the returned handler to change.
			Level:           log.InfoLevel,
			ReportTimestamp: true,
			ReportCaller:    debug,
			Prefix:          "autoxbuild",
		},
	)
	if debug {
		logHandler.SetLevel(log.DebugLevel)
	}

	logger := slog.New(logHandler)
	slog.SetDefault(logger)

	return logHandler
}
