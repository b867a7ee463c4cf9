package globals

import (
	"os"
	"time"

	"github.com/rs/zerolog"
)

var (
	// Logger writes to stderr so reports
	// printed on stdout stay machine readable.
	Logger = zerolog.New(zerolog.NewConsoleWriter(func(w *zerolog.ConsoleWriter) {
		w.Out = os.Stderr
		w.TimeFormat = time.RFC3339
	})).With().Timestamp().Logger()
)

// SetVerbose switches debug level
// logs on or off.
func SetVerbose(verbose bool) {
	if verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}
