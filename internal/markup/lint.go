package markup

import (
	"fmt"
	"sort"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// Issue flags a construct that the authoring dialect does not recognize. The
// line is 1-based and best effort: goldmark does not retain positions for
// every node kind.
type Issue struct {
	Line    int
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("line %d: %s", i.Line, i.Message)
}

var lintEngine = goldmark.New(goldmark.WithExtensions(extension.GFM))

// Lint parses the source with a full CommonMark+GFM parser and reports
// constructs the dialect would silently mangle: setext headings, indented
// code, raw HTML, nested lists, thematic breaks, strikethrough, task lists,
// and autolinks. An empty slice means the source stays inside the dialect.
func Lint(src string) []Issue {
	source := []byte(src)
	offsets := lineOffsets(source)
	root := lintEngine.Parser().Parse(text.NewReader(source))

	var issues []Issue
	report := func(n ast.Node, message string) {
		issues = append(issues, Issue{Line: nodeLine(offsets, n), Message: message})
	}

	_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n.Kind() {
		case ast.KindHeading:
			if isSetextHeading(source, n) {
				report(n, "setext heading; use '#' prefixes")
			}
		case ast.KindCodeBlock:
			report(n, "indented code block; use a ``` fence")
		case ast.KindHTMLBlock, ast.KindRawHTML:
			report(n, "raw HTML is not recognized")
		case ast.KindThematicBreak:
			report(n, "thematic break is not recognized")
		case ast.KindList:
			if hasListAncestor(n) {
				report(n, "nested list will be flattened")
			}
		case ast.KindAutoLink:
			report(n, "autolink; use [text](url)")
		case east.KindStrikethrough:
			report(n, "strikethrough is not recognized")
		case east.KindTaskCheckBox:
			report(n, "task list marker is not recognized")
		}
		return ast.WalkContinue, nil
	})

	return issues
}

func lineOffsets(source []byte) []int {
	offsets := []int{0}
	for i, b := range source {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}

func lineAt(offsets []int, pos int) int {
	return sort.SearchInts(offsets, pos+1)
}

// nodeLine resolves a 1-based line for the node, climbing to the nearest
// block that kept its source segments.
func nodeLine(offsets []int, n ast.Node) int {
	for cur := n; cur != nil; cur = cur.Parent() {
		if cur.Type() != ast.TypeBlock {
			continue
		}
		if lines := cur.Lines(); lines.Len() > 0 {
			return lineAt(offsets, lines.At(0).Start)
		}
	}
	for prev := n.PreviousSibling(); prev != nil; prev = prev.PreviousSibling() {
		if lines := prev.Lines(); lines.Len() > 0 {
			return lineAt(offsets, lines.At(lines.Len()-1).Stop) + 1
		}
	}
	return 1
}

func isSetextHeading(source []byte, n ast.Node) bool {
	lines := n.Lines()
	if lines.Len() == 0 {
		return false
	}
	start := lines.At(0).Start
	for start > 0 && source[start-1] != '\n' {
		start--
	}
	for start < len(source) && (source[start] == ' ' || source[start] == '\t') {
		start++
	}
	return start < len(source) && source[start] != '#'
}

func hasListAncestor(n ast.Node) bool {
	for cur := n.Parent(); cur != nil; cur = cur.Parent() {
		if cur.Kind() == ast.KindList {
			return true
		}
	}
	return false
}
