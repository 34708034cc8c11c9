package tables

import (
	"errors"
	"fmt"
)

var (
	// ErrAmbiguousStructure flags an edit that cannot be applied without
	// guessing how spanned cells should be rewritten.
	ErrAmbiguousStructure = errors.New("tables: ambiguous structure")

	// ErrOutOfRange flags an index that addresses nothing in the table.
	ErrOutOfRange = errors.New("tables: index out of range")

	// ErrInvalidHighlight flags a highlight color that is not a hex triplet.
	ErrInvalidHighlight = errors.New("tables: invalid highlight color")
)

// AmbiguousStructureError reports a structural edit blocked by a cell span.
// Row and Column locate the offending cell.
type AmbiguousStructureError struct {
	Row    int
	Column int
	Reason string
}

func (e *AmbiguousStructureError) Error() string {
	if e == nil {
		return ErrAmbiguousStructure.Error()
	}
	return fmt.Sprintf("%s: %s (row %d, column %d)", ErrAmbiguousStructure.Error(), e.Reason, e.Row, e.Column)
}

func (e *AmbiguousStructureError) Unwrap() error {
	return ErrAmbiguousStructure
}

// OutOfRangeError reports an index outside the addressable range. Kind names
// what the index was meant to address.
type OutOfRangeError struct {
	Kind  string
	Index int
	Count int
}

func (e *OutOfRangeError) Error() string {
	if e == nil {
		return ErrOutOfRange.Error()
	}
	return fmt.Sprintf("%s: %s %d of %d", ErrOutOfRange.Error(), e.Kind, e.Index, e.Count)
}

func (e *OutOfRangeError) Unwrap() error {
	return ErrOutOfRange
}
