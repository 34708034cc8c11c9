package markup

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

var (
	imagePattern      = regexp.MustCompile(`^!\[([^\]]*)\]\(([^)]+)\)`)
	attachmentPattern = regexp.MustCompile(`^\[image:([^\]]+)\]`)
	linkPattern       = regexp.MustCompile(`^\[([^\]]+)\]\(([^)]+)\)`)
	boldPattern       = regexp.MustCompile(`^\*\*(.+?)\*\*`)
	italicPattern     = regexp.MustCompile(`^\*([^*]+)\*`)
	codePattern       = regexp.MustCompile("^`([^`]+)`")
)

// ParseInline scans the source for inline constructs and returns the inline
// node sequence. Recognizers apply in a fixed order at every position: image
// and attachment shorthand first, then link, bold, italic, and inline code.
// Image syntax is a textual superset of link syntax, so trying links first
// would strip the leading bang and misread the alt/target pair.
func ParseInline(src string) []document.Node {
	var (
		nodes []document.Node
		text  strings.Builder
	)

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, document.Text{Value: text.String()})
			text.Reset()
		}
	}

	i := 0
	for i < len(src) {
		rest := src[i:]

		if src[i] == '!' {
			if m := imagePattern.FindStringSubmatch(rest); m != nil {
				flush()
				nodes = append(nodes, imageNode(m[1], m[2]))
				i += len(m[0])
				continue
			}
		}

		if src[i] == '[' {
			if m := attachmentPattern.FindStringSubmatch(rest); m != nil {
				flush()
				nodes = append(nodes, document.Image{
					Target:     strings.TrimSpace(m[1]),
					Attachment: true,
				})
				i += len(m[0])
				continue
			}
			if m := linkPattern.FindStringSubmatch(rest); m != nil {
				flush()
				nodes = append(nodes, document.Link{Text: m[1], Target: m[2]})
				i += len(m[0])
				continue
			}
		}

		if src[i] == '*' {
			if m := boldPattern.FindStringSubmatch(rest); m != nil {
				flush()
				nodes = append(nodes, document.Bold{Children: ParseInline(m[1])})
				i += len(m[0])
				continue
			}
			if m := italicPattern.FindStringSubmatch(rest); m != nil && italicBoundary(src, i, len(m[0])) {
				flush()
				nodes = append(nodes, document.Italic{Children: ParseInline(m[1])})
				i += len(m[0])
				continue
			}
		}

		if src[i] == '`' {
			if m := codePattern.FindStringSubmatch(rest); m != nil {
				flush()
				nodes = append(nodes, document.InlineCode{Value: m[1]})
				i += len(m[0])
				continue
			}
		}

		text.WriteByte(src[i])
		i++
	}

	flush()
	return nodes
}

// italicBoundary rejects italic matches that border additional asterisks so a
// stray bold marker is never split into an italic pair.
func italicBoundary(src string, start, length int) bool {
	if start > 0 && src[start-1] == '*' {
		return false
	}
	if end := start + length; end < len(src) && src[end] == '*' {
		return false
	}
	return true
}

// imageNode builds an Image for markdown image syntax. Targets without an
// http(s) scheme refer to attachments uploaded to the page rather than
// external resources.
func imageNode(alt, target string) document.Image {
	target = strings.TrimSpace(target)
	return document.Image{
		Alt:        alt,
		Target:     target,
		Attachment: !hasURLScheme(target),
	}
}

func hasURLScheme(target string) bool {
	lower := strings.ToLower(target)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
