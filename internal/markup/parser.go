// Package markup parses the markdown authoring dialect into the document
// tree. The dialect is deliberately line oriented: headings, list items,
// quote lines, table rows, and fence delimiters are recognized by prefix, and
// every other non-blank line is a paragraph.
package markup

import (
	"regexp"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

var orderedItemPattern = regexp.MustCompile(`^(\d+)\.\s+`)

// Parser converts markdown-dialect source into document nodes. The parser is
// stateless, so a single instance can be shared across goroutines.
type Parser struct{}

// NewParser constructs a Parser.
func NewParser() *Parser {
	return &Parser{}
}

// Parse tokenizes the source into block nodes. The dialect is interpreted
// liberally: lines that fit no block construct become paragraphs, so Parse
// does not fail on malformed input.
func (p *Parser) Parse(src string) ([]document.Node, error) {
	var (
		nodes []document.Node
		lines = strings.Split(src, "\n")
		i     = 0
	)

	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case trimmed == "":
			i++

		case strings.HasPrefix(trimmed, "```"):
			block, next := parseFence(lines, i)
			nodes = append(nodes, block)
			i = next

		case strings.HasPrefix(trimmed, "#"):
			nodes = append(nodes, parseHeading(trimmed))
			i++

		case strings.HasPrefix(trimmed, "> ") || trimmed == ">":
			content := strings.TrimPrefix(strings.TrimPrefix(trimmed, ">"), " ")
			nodes = append(nodes, document.Quote{Children: ParseInline(content)})
			i++

		case isTableRow(trimmed):
			table, next := parseTable(lines, i)
			nodes = append(nodes, table)
			i = next

		case listItemText(trimmed) != nil:
			list, next := parseList(lines, i)
			nodes = append(nodes, list)
			i = next

		default:
			nodes = append(nodes, document.Paragraph{Children: ParseInline(trimmed)})
			i++
		}
	}

	return nodes, nil
}

// ParseInline exposes the inline recognizer pipeline for callers that handle
// fragments outside a full document, such as table cell updates.
func (p *Parser) ParseInline(src string) []document.Node {
	return ParseInline(src)
}

// parseFence consumes a fenced block starting at lines[start] and returns the
// resulting node plus the index of the first unconsumed line. A fence left
// open at end of input is flushed as if it had been closed.
func parseFence(lines []string, start int) (document.Node, int) {
	opening := strings.TrimSpace(lines[start])
	language := strings.ToLower(strings.TrimSpace(strings.TrimPrefix(opening, "```")))

	var body []string
	i := start + 1
	for i < len(lines) {
		if strings.HasPrefix(strings.TrimSpace(lines[i]), "```") {
			i++
			break
		}
		body = append(body, lines[i])
		i++
	}

	text := strings.Join(body, "\n")
	switch language {
	case "mermaid":
		return document.DiagramBlock{Kind: document.DiagramMermaid, Text: text}, i
	case "plantuml", "uml", "puml":
		return document.DiagramBlock{Kind: document.DiagramPlantUML, Text: text}, i
	default:
		return document.CodeBlock{Language: language, Text: text}, i
	}
}

func parseHeading(trimmed string) document.Node {
	level := 0
	for level < len(trimmed) && trimmed[level] == '#' {
		level++
	}
	if level > 6 {
		level = 6
	}
	text := strings.TrimSpace(strings.TrimLeft(trimmed, "#"))
	return document.Heading{Level: level, Children: ParseInline(text)}
}

// listItemText returns the item content when the line is a list item, nil
// otherwise. The pointer distinguishes an empty item from a non-item line.
func listItemText(trimmed string) *listItem {
	if strings.HasPrefix(trimmed, "- ") {
		return &listItem{text: trimmed[2:]}
	}
	if strings.HasPrefix(trimmed, "* ") {
		return &listItem{text: trimmed[2:]}
	}
	if m := orderedItemPattern.FindString(trimmed); m != "" {
		return &listItem{text: trimmed[len(m):], ordered: true}
	}
	return nil
}

type listItem struct {
	text    string
	ordered bool
}

// parseList consumes consecutive list items of the same kind. A blank line, a
// different marker kind, or any other construct ends the list.
func parseList(lines []string, start int) (document.Node, int) {
	first := listItemText(strings.TrimSpace(lines[start]))
	list := document.List{Ordered: first.ordered}

	i := start
	for i < len(lines) {
		item := listItemText(strings.TrimSpace(lines[i]))
		if item == nil || item.ordered != list.Ordered {
			break
		}
		list.Items = append(list.Items, ParseInline(item.text))
		i++
	}
	return list, i
}

func isTableRow(trimmed string) bool {
	return len(trimmed) > 1 && strings.HasPrefix(trimmed, "|") && strings.HasSuffix(trimmed, "|")
}

// isSeparatorRow reports whether every cell consists solely of dashes, colons,
// and spaces, which marks the header separator in pipe tables.
func isSeparatorRow(cells []string) bool {
	sawDash := false
	for _, cell := range cells {
		for _, r := range cell {
			switch r {
			case '-':
				sawDash = true
			case ':', ' ':
			default:
				return false
			}
		}
	}
	return sawDash
}

func splitTableRow(trimmed string) []string {
	inner := strings.TrimSuffix(strings.TrimPrefix(trimmed, "|"), "|")
	parts := strings.Split(inner, "|")
	cells := make([]string, len(parts))
	for i, part := range parts {
		cells[i] = strings.TrimSpace(part)
	}
	return cells
}

// parseTable consumes consecutive pipe rows. The first content row supplies
// the header cells; separator rows are discarded.
func parseTable(lines []string, start int) (document.Node, int) {
	var table document.Table

	i := start
	for i < len(lines) {
		trimmed := strings.TrimSpace(lines[i])
		if !isTableRow(trimmed) {
			break
		}
		cells := splitTableRow(trimmed)
		i++

		if isSeparatorRow(cells) {
			continue
		}

		header := len(table.Rows) == 0
		row := document.Row{Cells: make([]document.Cell, 0, len(cells))}
		for _, cell := range cells {
			row.Cells = append(row.Cells, document.Cell{
				Content: ParseInline(cell),
				Header:  header,
				ColSpan: 1,
				RowSpan: 1,
			})
		}
		table.Rows = append(table.Rows, row)
	}

	return table, i
}
