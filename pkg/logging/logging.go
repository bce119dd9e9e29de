// Package logging holds the shared logger for the module. Packages grab
// it once at file scope:
//
//	var log = logging.Logger
package logging

import (
	"github.com/sirupsen/logrus"
)

const TimestampFormat = "2006-01-02T15:04:05.000Z07:00"

// Logger is the process-wide logger. Diagnostics about tolerated document
// irregularities (unknown attributes, unresolved references) go through it
// at debug level.
var Logger = logrus.New()

func init() {
	Logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: TimestampFormat,
		FullTimestamp:   true,
	})
}

// SetLevel adjusts the shared logger's verbosity. Unknown level names fall
// back to info.
func SetLevel(level string) {
	parsed, err := logrus.ParseLevel(level)
	if err != nil {
		parsed = logrus.InfoLevel
	}
	Logger.SetLevel(parsed)
}
