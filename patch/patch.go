// Package patch re-exports the exact-substring patcher.
package patch

import (
	internalpatch "github.com/goliatone/go-confluence/internal/patch"

	"github.com/goliatone/go-confluence/storage"
)

// ErrNotFound is re-exported from the internal patch package.
var ErrNotFound = internalpatch.ErrNotFound

// Re-exported types from the internal patch package.
type (
	Patcher       = internalpatch.Patcher
	Result        = internalpatch.Result
	NotFoundError = internalpatch.NotFoundError
)

// NewPatcher constructs a patcher whose replacement normalization uses the
// supplied macro names.
func NewPatcher(macros storage.MacroNames) *Patcher {
	return internalpatch.NewPatcher(macros)
}
