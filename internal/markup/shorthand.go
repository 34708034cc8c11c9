package markup

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

var (
	attachmentAnywherePattern = regexp.MustCompile(`\[image:([^\]]+)\]`)
	imageAnywherePattern      = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+)\)`)
)

// ExpandImageShorthand rewrites every [image:name] and ![alt](target)
// occurrence in src through emit, leaving all surrounding text untouched.
// Attachment detection follows the same scheme rule as inline parsing.
func ExpandImageShorthand(src string, emit func(document.Image) string) string {
	out := attachmentAnywherePattern.ReplaceAllStringFunc(src, func(match string) string {
		sub := attachmentAnywherePattern.FindStringSubmatch(match)
		return emit(document.Image{
			Target:     strings.TrimSpace(sub[1]),
			Attachment: true,
		})
	})
	return imageAnywherePattern.ReplaceAllStringFunc(out, func(match string) string {
		sub := imageAnywherePattern.FindStringSubmatch(match)
		return emit(imageNode(sub[1], sub[2]))
	})
}
