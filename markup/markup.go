// Package markup re-exports the markdown-dialect parser.
package markup

import (
	internalmarkup "github.com/goliatone/go-confluence/internal/markup"

	"github.com/goliatone/go-confluence/document"
)

// Re-exported types from the internal markup package.
type (
	Parser = internalmarkup.Parser
	Issue  = internalmarkup.Issue
)

// NewParser constructs the block and inline parser for the supported
// markdown dialect.
func NewParser() *Parser {
	return internalmarkup.NewParser()
}

// ParseInline runs only the inline recognizers over src.
func ParseInline(src string) []document.Node {
	return internalmarkup.ParseInline(src)
}

// Lint flags constructs outside the supported dialect. Advisory only.
func Lint(src string) []Issue {
	return internalmarkup.Lint(src)
}
