package storage

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

// ToMarkdown projects a document tree onto the markdown dialect. Raw leaves
// have no markdown equivalent; their tags are stripped and entities resolved,
// the same degradation the export path has always applied to unknown markup.
func ToMarkdown(nodes []document.Node) string {
	var blocks []string
	for _, node := range nodes {
		if block, ok := blockMarkdown(node); ok {
			blocks = append(blocks, block)
		}
	}
	return strings.Join(blocks, "\n\n")
}

func blockMarkdown(node document.Node) (string, bool) {
	switch n := node.(type) {
	case document.Heading:
		return strings.Repeat("#", n.Level) + " " + inlineMarkdown(n.Children), true
	case document.Paragraph:
		return inlineMarkdown(n.Children), true
	case document.Quote:
		return "> " + inlineMarkdown(n.Children), true
	case document.List:
		lines := make([]string, 0, len(n.Items))
		for i, item := range n.Items {
			marker := "- "
			if n.Ordered {
				marker = fmt.Sprintf("%d. ", i+1)
			}
			lines = append(lines, marker+inlineMarkdown(item))
		}
		return strings.Join(lines, "\n"), true
	case document.CodeBlock:
		return "```" + n.Language + "\n" + n.Text + "\n```", true
	case document.DiagramBlock:
		return "```" + string(n.Kind) + "\n" + n.Text + "\n```", true
	case document.Table:
		return tableMarkdown(n), true
	case document.Raw:
		stripped := strings.TrimSpace(UnescapeText(anyTagPattern.ReplaceAllString(n.Markup, "")))
		return stripped, stripped != ""
	default:
		text := inlineMarkdown([]document.Node{node})
		return text, text != ""
	}
}

func tableMarkdown(t document.Table) string {
	var lines []string
	for i, row := range t.Rows {
		cells := make([]string, 0, len(row.Cells))
		for _, cell := range row.Cells {
			text := strings.ReplaceAll(inlineMarkdown(cell.Content), "\n", " ")
			cells = append(cells, strings.TrimSpace(text))
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
		if i == 0 {
			lines = append(lines, "|"+strings.Repeat("---|", len(cells)))
		}
	}
	return strings.Join(lines, "\n")
}

func inlineMarkdown(nodes []document.Node) string {
	var b strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case document.Text:
			b.WriteString(n.Value)
		case document.Bold:
			b.WriteString("**" + inlineMarkdown(n.Children) + "**")
		case document.Italic:
			b.WriteString("*" + inlineMarkdown(n.Children) + "*")
		case document.InlineCode:
			b.WriteString("`" + n.Value + "`")
		case document.Link:
			b.WriteString("[" + n.Text + "](" + n.Target + ")")
		case document.Image:
			b.WriteString("![" + n.Alt + "](" + n.Target + ")")
		case document.Raw:
			b.WriteString(UnescapeText(anyTagPattern.ReplaceAllString(n.Markup, "")))
		}
	}
	return b.String()
}
