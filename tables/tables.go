// Package tables re-exports the structural table editor.
package tables

import (
	internaltables "github.com/goliatone/go-confluence/internal/tables"

	"github.com/goliatone/go-confluence/storage"
)

// Re-exported errors from the internal tables package.
var (
	ErrAmbiguousStructure = internaltables.ErrAmbiguousStructure
	ErrOutOfRange         = internaltables.ErrOutOfRange
	ErrInvalidHighlight   = internaltables.ErrInvalidHighlight
)

// Re-exported types from the internal tables package.
type (
	Editor                  = internaltables.Editor
	Summary                 = internaltables.Summary
	CellUpdate              = internaltables.CellUpdate
	CellStyle               = internaltables.CellStyle
	AmbiguousStructureError = internaltables.AmbiguousStructureError
	OutOfRangeError         = internaltables.OutOfRangeError
)

// NewEditor constructs an editor that addresses tables by document order.
func NewEditor(macros storage.MacroNames) *Editor {
	return internaltables.NewEditor(macros)
}
