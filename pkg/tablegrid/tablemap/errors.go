package tablemap

import "errors"

var (
	// ErrNotFound indicates an offset that matches no cell of the grid.
	// It signals a stale or foreign offset and is a caller error.
	ErrNotFound = errors.New("cell not found")

	// ErrNotTable indicates a node passed where a table was expected.
	ErrNotTable = errors.New("not a table node")
)
