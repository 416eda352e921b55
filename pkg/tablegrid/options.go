// Package tablegrid loads, inspects, repairs and edits documents holding
// tables with merged cells and sections.
package tablegrid

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/commands"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/normalize"
)

// Options configures document handling.
type Options struct {
	// Sheet is the spreadsheet sheet to read or write. Empty means the
	// first sheet on load and Sheet1 on save.
	Sheet string
	// Range limits a spreadsheet import to a range like A1:D10.
	Range string
	// HeaderRows is the number of leading spreadsheet rows imported as a
	// head section.
	HeaderRows int
	// Widths specifies whether spreadsheet column widths become colwidth
	// attributes. If nil, defaults to true.
	Widths *bool
	// Pretty indents JSON output.
	Pretty bool
	// LegacyHeaderToggle makes the header row and column toggles flip every
	// selected row or column.
	LegacyHeaderToggle bool
	// Logger receives debug entries. Nil discards.
	Logger logrus.FieldLogger
}

// DefaultOptions returns default document options.
func DefaultOptions() Options {
	return Options{
		Logger: discardLogger(),
	}
}

// ShouldImportWidths returns whether to import spreadsheet column widths.
func (o Options) ShouldImportWidths() bool {
	if o.Widths != nil {
		return *o.Widths
	}
	return true
}

// CommandOptions returns the options handed to structural commands.
func (o Options) CommandOptions() commands.Options {
	return commands.Options{
		LegacyHeaderToggle: o.LegacyHeaderToggle,
		Logger:             o.logger(),
	}
}

// NormalizeOptions returns the options handed to the normalizer.
func (o Options) NormalizeOptions() normalize.Options {
	opts := normalize.DefaultOptions()
	opts.Logger = o.logger()
	return opts
}

func (o Options) logger() logrus.FieldLogger {
	if o.Logger == nil {
		return discardLogger()
	}
	return o.Logger
}

func discardLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}
