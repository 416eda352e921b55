// Package commands implements structural table edits: adding and removing
// rows, columns and sections, merging and splitting cells, toggling header
// cells and moving between cells.
//
// A Command inspects a State and either refuses, returning an error that
// wraps ErrNotApplicable, or returns a Transaction holding the complete
// edit. Commands never leave a partial edit behind.
package commands

import (
	"errors"
	"fmt"

	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/model"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/selection"
	"github.com/ukaji3/tablegrid-go/pkg/tablegrid/transform"
)

// ErrNotApplicable is wrapped by every refusal.
var ErrNotApplicable = errors.New("command not applicable")

func notApplicable(reason string) error {
	return fmt.Errorf("%w: %s", ErrNotApplicable, reason)
}

// State is a document with a selection in it.
type State struct {
	Doc       *model.Node
	Selection selection.Selection
}

// Transaction is the edit a command produced. It may set the selection of
// the next state; otherwise the current selection is mapped through it.
type Transaction struct {
	*transform.Transform
	selection selection.Selection
}

// Tr starts an empty transaction on s.
func (s State) Tr() *Transaction {
	return &Transaction{Transform: transform.New(s.Doc)}
}

// SetSelection sets the selection the next state will have.
func (tx *Transaction) SetSelection(sel selection.Selection) *Transaction {
	tx.selection = sel
	return tx
}

// Selection returns the selection set on tx, or nil.
func (tx *Transaction) Selection() selection.Selection {
	return tx.selection
}

// Apply returns the state after tx.
func (s State) Apply(tx *Transaction) State {
	sel := tx.selection
	if sel == nil && s.Selection != nil {
		sel = s.Selection.Map(tx.Doc(), tx.Mapping())
	}
	return State{Doc: tx.Doc(), Selection: sel}
}

// Command is a structural edit.
type Command func(State) (*Transaction, error)

// Applicable reports whether cmd would produce an edit in state.
func Applicable(cmd Command, state State) bool {
	_, err := cmd(state)
	return err == nil
}

// Run applies cmd to state and returns the next state.
func Run(cmd Command, state State) (State, error) {
	tx, err := cmd(state)
	if err != nil {
		return state, err
	}
	return state.Apply(tx), nil
}
