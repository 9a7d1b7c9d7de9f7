// Package monitoring holds the process-wide diagnostic logger.
package monitoring

import (
	"io"
	"os"

	"github.com/sirupsen/logrus"
)

var base = newLogger(os.Stderr)

func newLogger(w io.Writer) *logrus.Logger {
	l := logrus.New()
	l.SetOutput(w)
	l.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "15:04:05",
	})
	return l
}

// Logf logs a printf-style message at info level on the shared logger.
func Logf(format string, v ...interface{}) {
	base.Infof(format, v...)
}

// Logger returns the shared structured logger.
func Logger() *logrus.Logger {
	return base
}

// SetLevel parses a level name such as "debug" or "warn" and applies it.
func SetLevel(level string) error {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return err
	}
	base.SetLevel(lvl)
	return nil
}

// SetOutput redirects the shared logger.
func SetOutput(w io.Writer) {
	base.SetOutput(w)
}
