package entity

import "errors"

var (
	// ErrStructure is returned when a mutation would break a structural
	// invariant, such as a split placed directly under a stack.
	ErrStructure = errors.New("structural violation")

	// ErrPathNotFound is returned when a path does not address a slot.
	ErrPathNotFound = errors.New("path not found")

	// ErrUnknownNodeType is returned when a node spec names no known type.
	ErrUnknownNodeType = errors.New("unknown node type")
)
