package commands

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options configures the commands that have policy choices.
type Options struct {
	// LegacyHeaderToggle makes ToggleHeader flip every selected row or
	// column instead of only the first row or column of the table.
	LegacyHeaderToggle bool

	// Logger receives debug entries from WithLogging. Nil discards.
	Logger logrus.FieldLogger
}

// DefaultOptions returns the default command options.
func DefaultOptions() Options {
	return Options{
		LegacyHeaderToggle: false,
		Logger:             discardLogger(),
	}
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	return o
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
