// Package storage re-exports the Confluence storage-format renderer and
// parser.
package storage

import (
	internalstorage "github.com/goliatone/go-confluence/internal/storage"

	"github.com/goliatone/go-confluence/document"
)

// Re-exported errors from the internal storage package.
var (
	ErrParse                = internalstorage.ErrParse
	ErrUnsupportedConstruct = internalstorage.ErrUnsupportedConstruct
)

// Re-exported types from the internal storage package.
type (
	MacroNames                = internalstorage.MacroNames
	Renderer                  = internalstorage.Renderer
	Parser                    = internalstorage.Parser
	ParseError                = internalstorage.ParseError
	UnsupportedConstructError = internalstorage.UnsupportedConstructError
)

// DefaultMacroNames returns the macro names of the stock diagram plugins.
func DefaultMacroNames() MacroNames {
	return internalstorage.DefaultMacroNames()
}

// NewRenderer constructs a renderer using the supplied macro names.
func NewRenderer(macros MacroNames) *Renderer {
	return internalstorage.NewRenderer(macros)
}

// NewParser constructs a parser using the supplied macro names.
func NewParser(macros MacroNames) *Parser {
	return internalstorage.NewParser(macros)
}

// ToMarkdown projects a parsed document tree back to the markdown dialect.
func ToMarkdown(nodes []document.Node) string {
	return internalstorage.ToMarkdown(nodes)
}

// EscapeText escapes the five reserved characters and keeps pre-encoded
// entities from double-encoding.
func EscapeText(s string) string {
	return internalstorage.EscapeText(s)
}

// UnescapeText inverts EscapeText.
func UnescapeText(s string) string {
	return internalstorage.UnescapeText(s)
}
