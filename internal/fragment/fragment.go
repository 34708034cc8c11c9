// Package fragment interprets caller-supplied content strings that may be
// markdown, ready-made storage markup, or either form carrying image
// shorthand. Table cell updates and body patches both route their inputs
// through a Normalizer so the two surfaces accept the same conventions.
package fragment

import (
	"strings"

	"github.com/goliatone/go-confluence/document"
	"github.com/goliatone/go-confluence/internal/markup"
	"github.com/goliatone/go-confluence/internal/storage"
)

// Normalizer converts content strings into document nodes or storage markup.
type Normalizer struct {
	parser   *markup.Parser
	renderer *storage.Renderer
}

func NewNormalizer(macros storage.MacroNames) *Normalizer {
	return &Normalizer{
		parser:   markup.NewParser(),
		renderer: storage.NewRenderer(macros),
	}
}

// Inline interprets content destined for a single table cell. Content that
// already reads as markup keeps its shape, with image shorthand expanded in
// place. Everything else runs through the inline markdown pipeline.
func (n *Normalizer) Inline(content string) []document.Node {
	if looksLikeMarkup(content) {
		return []document.Node{document.Raw{Markup: n.expand(content)}}
	}
	return n.parser.ParseInline(content)
}

// Body interprets content destined for a document region. Markup passes
// through with image shorthand expanded, markdown converts fully. Empty
// content stays empty so replacements can delete what they match.
func (n *Normalizer) Body(content string) (string, error) {
	if strings.TrimSpace(content) == "" {
		return content, nil
	}
	if looksLikeMarkup(content) {
		return n.expand(content), nil
	}
	nodes, err := n.parser.Parse(content)
	if err != nil {
		return "", err
	}
	return n.renderer.Render(nodes)
}

func (n *Normalizer) expand(content string) string {
	return markup.ExpandImageShorthand(content, storage.ImageMarkup)
}

func looksLikeMarkup(content string) bool {
	return strings.HasPrefix(strings.TrimSpace(content), "<")
}
