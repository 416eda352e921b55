package commands

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/sirupsen/logrus"
)

// builders maps command names to constructors.
var builders = map[string]func(Options) Command{
	"add-column-before":    func(Options) Command { return AddColumnBefore },
	"add-column-after":     func(Options) Command { return AddColumnAfter },
	"delete-column":        func(Options) Command { return DeleteColumn },
	"add-row-before":       func(Options) Command { return AddRowBefore },
	"add-row-after":        func(Options) Command { return AddRowAfter },
	"delete-row":           func(Options) Command { return DeleteRow },
	"add-table-head":       func(Options) Command { return AddTableHead },
	"add-table-foot":       func(Options) Command { return AddTableFoot },
	"add-body-before":      func(Options) Command { return AddBodyBefore },
	"add-body-after":       func(Options) Command { return AddBodyAfter },
	"delete-section":       func(Options) Command { return DeleteSection },
	"merge-cells":          func(Options) Command { return MergeCells },
	"split-cell":           func(Options) Command { return SplitCell },
	"toggle-header-row":    ToggleHeaderRow,
	"toggle-header-column": ToggleHeaderColumn,
	"toggle-header-cell":   ToggleHeaderCell,
	"next-cell":            func(Options) Command { return GoToNextCell(1) },
	"previous-cell":        func(Options) Command { return GoToNextCell(-1) },
	"delete-table":         func(Options) Command { return DeleteTable },
}

// Names returns the names Lookup knows, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(builders))
}

// Lookup returns the command called name, wrapped with logging to
// opts.Logger.
func Lookup(name string, opts Options) (Command, error) {
	build, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown command %q", name)
	}
	opts = opts.withDefaults()
	return WithLogging(name, build(opts), opts.Logger), nil
}

// WithLogging wraps cmd so every run is logged at debug level. Refusals
// are logged as such, never as errors.
func WithLogging(name string, cmd Command, log logrus.FieldLogger) Command {
	if log == nil {
		log = discardLogger()
	}
	return func(state State) (*Transaction, error) {
		entry := log.WithField("command", name)
		if state.Selection != nil {
			entry = entry.WithFields(logrus.Fields{
				"anchor": state.Selection.Anchor(),
				"head":   state.Selection.Head(),
			})
		}
		tx, err := cmd(state)
		switch {
		case errors.Is(err, ErrNotApplicable):
			entry.WithField("reason", err.Error()).Debug("Command not applicable.")
		case err != nil:
			entry.WithError(err).Error("Command failed.")
		default:
			entry.WithField("steps", tx.StepCount()).Debug("Command applied.")
		}
		return tx, err
	}
}
