package storage

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

var (
	headingOpenPattern   = regexp.MustCompile(`^<h([1-6])[^>]*>`)
	cellOpenPattern      = regexp.MustCompile(`^<(th|td)(\s[^>]*)?>`)
	tagNamePattern       = regexp.MustCompile(`^</?([a-zA-Z][a-zA-Z0-9:_-]*)`)
	macroNamePattern     = regexp.MustCompile(`ac:name="([^"]*)"`)
	languageParamPattern = regexp.MustCompile(`<ac:parameter[^>]*ac:name="language"[^>]*>([^<]*)</ac:parameter>`)
	hrefPattern          = regexp.MustCompile(`href="([^"]*)"`)
	filenamePattern      = regexp.MustCompile(`ri:filename="([^"]*)"`)
	urlValuePattern      = regexp.MustCompile(`ri:value="([^"]*)"`)
	srcAttrPattern       = regexp.MustCompile(`src="([^"]*)"`)
	imgAltPattern        = regexp.MustCompile(`\balt="([^"]*)"`)
	acAltPattern         = regexp.MustCompile(`ac:alt="([^"]*)"`)
	colspanPattern       = regexp.MustCompile(`colspan="(\d+)"`)
	rowspanPattern       = regexp.MustCompile(`rowspan="(\d+)"`)
	styleAttrPattern     = regexp.MustCompile(`style="([^"]*)"`)
	classAttrPattern     = regexp.MustCompile(`class="([^"]*)"`)
	highlightAttrPattern = regexp.MustCompile(`data-highlight-colour="([^"]*)"`)
	anyTagPattern        = regexp.MustCompile(`<[^>]+>`)
)

const (
	plainTextBodyOpen  = "<ac:plain-text-body>"
	cdataOpen          = "<![CDATA["
	plainTextBodyClose = "]]></ac:plain-text-body>"
)

// Parser reads storage-format markup back into a document tree. Formatting
// tags map onto their node variants; anything unrecognized is kept as an
// opaque raw leaf so a round trip never drops content.
type Parser struct {
	macros MacroNames
}

func NewParser(macros MacroNames) *Parser {
	return &Parser{macros: macros.withDefaults()}
}

// Parse converts a storage document into block nodes.
func (p *Parser) Parse(body string) ([]document.Node, error) {
	return p.parseBlocks(body)
}

func (p *Parser) parseBlocks(src string) ([]document.Node, error) {
	var nodes []document.Node

	i := 0
	for i < len(src) {
		if isSpaceByte(src[i]) {
			i++
			continue
		}
		if src[i] != '<' {
			end := p.nextBlockStart(src, i)
			if run := strings.TrimSpace(src[i:end]); run != "" {
				nodes = append(nodes, document.Paragraph{Children: p.parseInline(run)})
			}
			i = end
			continue
		}

		rest := src[i:]
		switch {
		case headingOpenPattern.MatchString(rest):
			node, next := p.parseHeading(src, i)
			nodes = append(nodes, node)
			i = next

		case tagNamed(rest, "p"):
			node, next := p.parseParagraph(src, i)
			nodes = append(nodes, node)
			i = next

		case tagNamed(rest, "ul"), tagNamed(rest, "ol"):
			node, next := p.parseList(src, i)
			nodes = append(nodes, node)
			i = next

		case tagNamed(rest, "blockquote"):
			node, next, err := p.parseBlockquote(src, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next

		case tagNamed(rest, "table"):
			node, next, err := p.parseTable(src, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next

		case tagNamed(rest, "ac:structured-macro"):
			node, next, err := p.parseMacro(src, i)
			if err != nil {
				return nil, err
			}
			nodes = append(nodes, node)
			i = next

		default:
			end := p.nextBlockStart(src, i+1)
			if run := strings.TrimSpace(src[i:end]); run != "" {
				nodes = append(nodes, document.Paragraph{Children: p.parseInline(run)})
			}
			i = end
		}
	}

	return nodes, nil
}

func (p *Parser) parseHeading(src string, start int) (document.Node, int) {
	m := headingOpenPattern.FindStringSubmatch(src[start:])
	level := int(m[1][0] - '0')
	bodyFrom := start + len(m[0])
	closeTag := "</h" + m[1] + ">"

	idx := strings.Index(src[bodyFrom:], closeTag)
	if idx < 0 {
		return document.Raw{Markup: m[0]}, bodyFrom
	}
	inner := src[bodyFrom : bodyFrom+idx]
	return document.Heading{Level: level, Children: p.parseInline(inner)}, bodyFrom + idx + len(closeTag)
}

func (p *Parser) parseParagraph(src string, start int) (document.Node, int) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return document.Raw{Markup: src[start:]}, len(src)
	}
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "p")
	if !ok {
		return document.Raw{Markup: src[start:bodyFrom]}, bodyFrom
	}
	return document.Paragraph{Children: p.parseInline(strings.TrimSpace(inner))}, next
}

func (p *Parser) parseList(src string, start int) (document.Node, int) {
	ordered := tagNamed(src[start:], "ol")
	name := "ul"
	if ordered {
		name = "ol"
	}
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return document.Raw{Markup: src[start:]}, len(src)
	}
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, name)
	if !ok {
		return document.Raw{Markup: src[start:bodyFrom]}, bodyFrom
	}

	list := document.List{Ordered: ordered}
	i := 0
	for i < len(inner) {
		lt := strings.IndexByte(inner[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		if !tagNamed(inner[pos:], "li") {
			i = pos + 1
			continue
		}
		liOpenEnd := strings.IndexByte(inner[pos:], '>')
		if liOpenEnd < 0 {
			break
		}
		itemFrom := pos + liOpenEnd + 1
		item, after, ok := matchClose(inner, itemFrom, "li")
		if !ok {
			item = inner[itemFrom:]
			after = len(inner)
		}
		list.Items = append(list.Items, p.parseInline(strings.TrimSpace(item)))
		i = after
	}
	return list, next
}

func (p *Parser) parseBlockquote(src string, start int) (document.Node, int, error) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return document.Raw{Markup: src[start:]}, len(src), nil
	}
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "blockquote")
	if !ok {
		return document.Raw{Markup: src[start:bodyFrom]}, bodyFrom, nil
	}

	blocks, err := p.parseBlocks(inner)
	if err != nil {
		return nil, 0, err
	}
	var children []document.Node
	for _, block := range blocks {
		if para, isPara := block.(document.Paragraph); isPara {
			if len(children) > 0 {
				children = append(children, document.Text{Value: " "})
			}
			children = append(children, para.Children...)
			continue
		}
		children = append(children, block)
	}
	return document.Quote{Children: children}, next, nil
}

func (p *Parser) parseTable(src string, start int) (document.Node, int, error) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return nil, 0, &ParseError{Construct: "table", Offset: start, Message: "unterminated opening tag"}
	}
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "table")
	if !ok {
		return nil, 0, &ParseError{Construct: "table", Offset: start, Message: "missing closing tag"}
	}
	rows, err := p.ParseRows(inner)
	if err != nil {
		return nil, 0, err
	}
	return document.Table{Rows: rows}, next, nil
}

// ParseRows reads a sequence of tr elements into row specs. The fragment may
// carry tbody/thead wrappers and inter-row whitespace; both are skipped.
func (p *Parser) ParseRows(fragment string) ([]document.Row, error) {
	var rows []document.Row

	i := 0
	for i < len(fragment) {
		lt := strings.IndexByte(fragment[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		if !tagNamed(fragment[pos:], "tr") {
			i = pos + 1
			continue
		}
		openEnd := strings.IndexByte(fragment[pos:], '>')
		if openEnd < 0 {
			return nil, &ParseError{Construct: "table row", Offset: pos, Message: "unterminated opening tag"}
		}
		rowFrom := pos + openEnd + 1
		inner, next, ok := matchClose(fragment, rowFrom, "tr")
		if !ok {
			return nil, &ParseError{Construct: "table row", Offset: pos, Message: "missing closing tag"}
		}
		rows = append(rows, document.Row{Cells: p.parseCells(inner)})
		i = next
	}
	return rows, nil
}

func (p *Parser) parseCells(rowInner string) []document.Cell {
	var cells []document.Cell

	i := 0
	for i < len(rowInner) {
		lt := strings.IndexByte(rowInner[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		m := cellOpenPattern.FindStringSubmatch(rowInner[pos:])
		if m == nil {
			i = pos + 1
			continue
		}
		tag, attrs := m[1], m[2]
		cellFrom := pos + len(m[0])
		inner, next, ok := matchClose(rowInner, cellFrom, tag)
		if !ok {
			inner = rowInner[cellFrom:]
			next = len(rowInner)
		}
		cells = append(cells, p.buildCell(tag, attrs, inner))
		i = next
	}
	return cells
}

func (p *Parser) buildCell(tag, attrs, inner string) document.Cell {
	cell := document.Cell{
		Content: p.parseInline(strings.TrimSpace(inner)),
		Header:  tag == "th",
		ColSpan: attrInt(colspanPattern, attrs),
		RowSpan: attrInt(rowspanPattern, attrs),
	}
	if m := styleAttrPattern.FindStringSubmatch(attrs); m != nil {
		cell.Style = UnescapeText(m[1])
	}
	if m := highlightAttrPattern.FindStringSubmatch(attrs); m != nil {
		cell.Highlight = NormalizeHighlight(m[1])
	}
	if cell.Highlight == "" {
		if m := classAttrPattern.FindStringSubmatch(attrs); m != nil && strings.HasPrefix(m[1], "highlight-") {
			cell.Highlight = NormalizeHighlight(strings.TrimPrefix(m[1], "highlight-"))
		}
	}
	return cell
}

func (p *Parser) parseMacro(src string, start int) (document.Node, int, error) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return nil, 0, &ParseError{Construct: "macro", Offset: start, Message: "unterminated opening tag"}
	}
	openTag := src[start : start+openEnd+1]
	name := ""
	if m := macroNamePattern.FindStringSubmatch(openTag); m != nil {
		name = m[1]
	}

	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "ac:structured-macro")
	if !ok {
		return nil, 0, &ParseError{Construct: "macro " + name, Offset: start, Message: "missing closing tag"}
	}
	whole := src[start:next]

	text, found, err := extractPlainTextBody(inner, start)
	if err != nil {
		return nil, 0, err
	}

	switch {
	case !found:
		return document.Raw{Markup: whole}, next, nil
	case name == codeMacroName:
		lang := ""
		if m := languageParamPattern.FindStringSubmatch(inner); m != nil {
			lang = UnescapeText(m[1])
		}
		return document.CodeBlock{Language: lang, Text: text}, next, nil
	case name == p.macros.Mermaid:
		return document.DiagramBlock{Kind: document.DiagramMermaid, Text: text}, next, nil
	case name == p.macros.PlantUML:
		return document.DiagramBlock{Kind: document.DiagramPlantUML, Text: text}, next, nil
	default:
		return document.Raw{Markup: whole}, next, nil
	}
}

// extractPlainTextBody pulls the literal text out of a macro body. The final
// terminator is located from the end so bodies that legitimately contain "]]>"
// (written as a split CDATA section) survive intact.
func extractPlainTextBody(inner string, base int) (string, bool, error) {
	open := strings.Index(inner, plainTextBodyOpen)
	if open < 0 {
		return "", false, nil
	}
	from := open + len(plainTextBodyOpen)
	if !strings.HasPrefix(inner[from:], cdataOpen) {
		return "", false, nil
	}
	from += len(cdataOpen)
	end := strings.LastIndex(inner, plainTextBodyClose)
	if end < from {
		return "", false, &ParseError{Construct: "macro body", Offset: base + open, Message: "unterminated CDATA section"}
	}
	return unwrapCDATA(inner[from:end]), true, nil
}

func (p *Parser) parseInline(src string) []document.Node {
	var nodes []document.Node
	var text strings.Builder

	flush := func() {
		if text.Len() > 0 {
			nodes = append(nodes, document.Text{Value: UnescapeText(text.String())})
			text.Reset()
		}
	}
	emit := func(n document.Node) {
		flush()
		nodes = append(nodes, n)
	}

	i := 0
	for i < len(src) {
		if src[i] != '<' {
			text.WriteByte(src[i])
			i++
			continue
		}
		rest := src[i:]

		if name, ok := pairedTag(rest, "strong", "b"); ok {
			if inner, next, found := elementInner(src, i, name); found {
				emit(document.Bold{Children: p.parseInline(inner)})
				i = next
				continue
			}
		}
		if name, ok := pairedTag(rest, "em", "i"); ok {
			if inner, next, found := elementInner(src, i, name); found {
				emit(document.Italic{Children: p.parseInline(inner)})
				i = next
				continue
			}
		}
		if tagNamed(rest, "code") {
			if inner, next, found := elementInner(src, i, "code"); found {
				emit(document.InlineCode{Value: UnescapeText(inner)})
				i = next
				continue
			}
		}
		if tagNamed(rest, "a") {
			if node, next, found := p.parseAnchor(src, i); found {
				emit(node)
				i = next
				continue
			}
		}
		if tagNamed(rest, "ac:image") {
			if node, next, found := p.parseImage(src, i); found {
				emit(node)
				i = next
				continue
			}
		}
		if tagNamed(rest, "img") {
			if node, next, found := parseImgTag(src, i); found {
				emit(node)
				i = next
				continue
			}
		}
		if strings.HasPrefix(rest, cdataOpen) {
			if end := strings.Index(rest, "]]>"); end >= 0 {
				emit(document.Raw{Markup: rest[:end+3]})
				i += end + 3
				continue
			}
		}

		if markup, next, ok := rawElement(src, i); ok {
			emit(document.Raw{Markup: markup})
			i = next
			continue
		}
		text.WriteByte(src[i])
		i++
	}

	flush()
	return nodes
}

func (p *Parser) parseAnchor(src string, start int) (document.Node, int, bool) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return nil, 0, false
	}
	openTag := src[start : start+openEnd+1]
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "a")
	if !ok {
		return nil, 0, false
	}
	target := ""
	if m := hrefPattern.FindStringSubmatch(openTag); m != nil {
		target = UnescapeText(m[1])
	}
	label := UnescapeText(anyTagPattern.ReplaceAllString(inner, ""))
	return document.Link{Text: label, Target: target}, next, true
}

func (p *Parser) parseImage(src string, start int) (document.Node, int, bool) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return nil, 0, false
	}
	openTag := src[start : start+openEnd+1]
	bodyFrom := start + openEnd + 1
	inner, next, ok := matchClose(src, bodyFrom, "ac:image")
	if !ok {
		return nil, 0, false
	}

	img := document.Image{}
	if m := acAltPattern.FindStringSubmatch(openTag); m != nil {
		img.Alt = UnescapeText(m[1])
	}
	if m := filenamePattern.FindStringSubmatch(inner); m != nil {
		img.Target = UnescapeText(m[1])
		img.Attachment = true
		return img, next, true
	}
	if m := urlValuePattern.FindStringSubmatch(inner); m != nil {
		img.Target = UnescapeText(m[1])
		return img, next, true
	}
	return document.Raw{Markup: src[start:next]}, next, true
}

func parseImgTag(src string, start int) (document.Node, int, bool) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return nil, 0, false
	}
	tag := src[start : start+openEnd+1]
	m := srcAttrPattern.FindStringSubmatch(tag)
	if m == nil {
		return nil, 0, false
	}
	img := document.Image{Target: UnescapeText(m[1])}
	if alt := imgAltPattern.FindStringSubmatch(tag); alt != nil {
		img.Alt = UnescapeText(alt[1])
	}
	return img, start + openEnd + 1, true
}

// rawElement captures an unrecognized tag, and its whole element when the
// matching close exists, as opaque markup.
func rawElement(src string, start int) (string, int, bool) {
	rest := src[start:]
	m := tagNamePattern.FindStringSubmatch(rest)
	if m == nil {
		return "", start, false
	}
	openEnd := strings.IndexByte(rest, '>')
	if openEnd < 0 {
		return "", start, false
	}
	tag := rest[:openEnd+1]

	if strings.HasPrefix(rest, "</") || strings.HasSuffix(tag, "/>") {
		return tag, start + len(tag), true
	}
	if _, next, ok := matchClose(src, start+len(tag), m[1]); ok {
		return src[start:next], next, true
	}
	return tag, start + len(tag), true
}

// nextBlockStart finds the next offset at which a block-level construct
// begins, or the end of input. Loose inline content before it becomes an
// implicit paragraph.
func (p *Parser) nextBlockStart(src string, from int) int {
	for idx := from; idx < len(src); {
		lt := strings.IndexByte(src[idx:], '<')
		if lt < 0 {
			return len(src)
		}
		pos := idx + lt
		if p.isBlockStart(src[pos:]) {
			return pos
		}
		idx = pos + 1
	}
	return len(src)
}

func (p *Parser) isBlockStart(s string) bool {
	if headingOpenPattern.MatchString(s) {
		return true
	}
	for _, name := range []string{"p", "ul", "ol", "blockquote", "table", "ac:structured-macro"} {
		if tagNamed(s, name) {
			return true
		}
	}
	return false
}

// tagNamed reports whether s begins with an opening tag of the given name,
// rejecting longer names that share the prefix.
func tagNamed(s, name string) bool {
	if len(s) < len(name)+2 || s[0] != '<' || !strings.HasPrefix(s[1:], name) {
		return false
	}
	switch s[len(name)+1] {
	case '>', ' ', '\t', '\n', '/':
		return true
	default:
		return false
	}
}

// pairedTag picks which of two interchangeable tag names opens at s.
func pairedTag(s, primary, alias string) (string, bool) {
	if tagNamed(s, primary) {
		return primary, true
	}
	if tagNamed(s, alias) {
		return alias, true
	}
	return "", false
}

// matchClose scans from the body start of an already-opened element to its
// matching close tag, counting nested openings of the same name so balanced
// nested markup stays inside the element.
func matchClose(src string, from int, name string) (string, int, bool) {
	closeTag := "</" + name + ">"
	depth := 1
	for idx := from; idx < len(src); {
		lt := strings.IndexByte(src[idx:], '<')
		if lt < 0 {
			break
		}
		pos := idx + lt
		rest := src[pos:]
		if strings.HasPrefix(rest, closeTag) {
			depth--
			if depth == 0 {
				return src[from:pos], pos + len(closeTag), true
			}
			idx = pos + len(closeTag)
			continue
		}
		if tagNamed(rest, name) {
			depth++
		}
		idx = pos + 1
	}
	return "", 0, false
}

// elementInner resolves a simple paired element's body given the offset of
// its opening tag.
func elementInner(src string, start int, name string) (string, int, bool) {
	openEnd := strings.IndexByte(src[start:], '>')
	if openEnd < 0 {
		return "", 0, false
	}
	return matchClose(src, start+openEnd+1, name)
}

func attrInt(pattern *regexp.Regexp, attrs string) int {
	m := pattern.FindStringSubmatch(attrs)
	if m == nil {
		return 1
	}
	n, err := strconv.Atoi(m[1])
	if err != nil || n < 1 {
		return 1
	}
	return n
}

func isSpaceByte(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r':
		return true
	default:
		return false
	}
}
