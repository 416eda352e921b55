package model

import "errors"

// Tree errors
var (
	// ErrInvalidNode indicates a node that does not fit the document structure.
	ErrInvalidNode = errors.New("invalid node")

	// ErrInvalidAttr indicates an attribute value of the wrong type or range.
	ErrInvalidAttr = errors.New("invalid attribute")
)

// Position errors
var (
	// ErrInvalidPosition indicates an offset outside the document or one that
	// does not address what the operation needs.
	ErrInvalidPosition = errors.New("invalid position")

	// ErrInvalidRange indicates a range whose ends do not share a parent.
	ErrInvalidRange = errors.New("range ends do not share a parent")
)
