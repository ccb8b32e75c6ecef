// README: Process-wide structured logger.
package logger

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Logger is shared by every package. It is usable before Init is called.
var Logger = newLogger()

// Init configures the shared logger. Unknown levels fall back to info.
func Init(level string) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	Logger.SetLevel(lvl)
}

// Silence discards all output; used by tests.
func Silence() {
	Logger.SetOutput(io.Discard)
}

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return l
}
