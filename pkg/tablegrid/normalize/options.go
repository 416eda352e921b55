package normalize

import (
	"io"

	"github.com/sirupsen/logrus"
)

// Options configures the normalizer.
type Options struct {
	// Logger receives one debug entry per problem found. Nil discards.
	Logger logrus.FieldLogger

	// MaxPasses bounds how often a table is recomputed and repaired.
	MaxPasses int
}

// DefaultOptions returns the default normalizer options.
func DefaultOptions() Options {
	return Options{
		Logger:    discardLogger(),
		MaxPasses: 8,
	}
}

func (o Options) withDefaults() Options {
	if o.Logger == nil {
		o.Logger = discardLogger()
	}
	if o.MaxPasses <= 0 {
		o.MaxPasses = DefaultOptions().MaxPasses
	}
	return o
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
