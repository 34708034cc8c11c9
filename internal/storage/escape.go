package storage

import (
	"html"
	"regexp"
	"strings"
)

// escapedEntityPattern matches an escaped ampersand that was already the start
// of a named, decimal, or hex entity in the source text.
var escapedEntityPattern = regexp.MustCompile(`&amp;(#[0-9]+;|#[xX][0-9a-fA-F]+;|[a-zA-Z][a-zA-Z0-9]*;)`)

// EscapeText escapes the five reserved markup characters and then collapses
// accidental double escaping: source text that already contained a valid
// entity such as &mdash; or &#8212; comes out carrying that entity once, not
// &amp;mdash;.
func EscapeText(s string) string {
	escaped := html.EscapeString(s)
	return escapedEntityPattern.ReplaceAllString(escaped, "&$1")
}

// UnescapeText resolves markup entities back to plain text.
func UnescapeText(s string) string {
	return html.UnescapeString(s)
}

// wrapCDATA encloses raw text in a CDATA section, splitting any literal "]]>"
// so the section cannot terminate early.
func wrapCDATA(text string) string {
	return "<![CDATA[" + strings.ReplaceAll(text, "]]>", "]]]]><![CDATA[>") + "]]>"
}

// unwrapCDATA reverses wrapCDATA given the text between the opening marker and
// the final terminator.
func unwrapCDATA(inner string) string {
	return strings.ReplaceAll(inner, "]]]]><![CDATA[>", "]]>")
}
