package storage

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-confluence/document"
)

const codeMacroName = "code"

// MacroNames configures the structured-macro names used for diagram blocks.
// The code macro name is fixed by the platform, but diagram macro names depend
// on which server-side rendering plugin is installed.
type MacroNames struct {
	Mermaid  string
	PlantUML string
}

// DefaultMacroNames returns the macro names of the stock plugins.
func DefaultMacroNames() MacroNames {
	return MacroNames{
		Mermaid:  "mermaid-macro",
		PlantUML: "plantuml",
	}
}

func (m MacroNames) withDefaults() MacroNames {
	defaults := DefaultMacroNames()
	if strings.TrimSpace(m.Mermaid) == "" {
		m.Mermaid = defaults.Mermaid
	}
	if strings.TrimSpace(m.PlantUML) == "" {
		m.PlantUML = defaults.PlantUML
	}
	return m
}

// Renderer emits storage-format markup from a document tree. The zero
// MacroNames value selects the default plugin names.
type Renderer struct {
	macros MacroNames
}

func NewRenderer(macros MacroNames) *Renderer {
	return &Renderer{macros: macros.withDefaults()}
}

// Render converts a block node sequence into storage markup, one block per
// line. Inline nodes handed in at block level are emitted bare.
func (r *Renderer) Render(nodes []document.Node) (string, error) {
	var lines []string
	for _, node := range nodes {
		if err := r.renderBlock(node, &lines); err != nil {
			return "", err
		}
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Renderer) renderBlock(node document.Node, lines *[]string) error {
	switch n := node.(type) {
	case document.Heading:
		inner, err := r.RenderInline(n.Children)
		if err != nil {
			return err
		}
		*lines = append(*lines, fmt.Sprintf("<h%d>%s</h%d>", n.Level, inner, n.Level))

	case document.Paragraph:
		inner, err := r.RenderInline(n.Children)
		if err != nil {
			return err
		}
		*lines = append(*lines, "<p>"+inner+"</p>")

	case document.Quote:
		inner, err := r.RenderInline(n.Children)
		if err != nil {
			return err
		}
		*lines = append(*lines, "<blockquote><p>"+inner+"</p></blockquote>")

	case document.List:
		tag := "ul"
		if n.Ordered {
			tag = "ol"
		}
		*lines = append(*lines, "<"+tag+">")
		for _, item := range n.Items {
			inner, err := r.RenderInline(item)
			if err != nil {
				return err
			}
			*lines = append(*lines, "<li>"+inner+"</li>")
		}
		*lines = append(*lines, "</"+tag+">")

	case document.CodeBlock:
		*lines = append(*lines, r.codeMacro(n))

	case document.DiagramBlock:
		markup, err := r.diagramMacro(n)
		if err != nil {
			return err
		}
		*lines = append(*lines, markup)

	case document.Table:
		rows, err := r.RenderRows(n.Rows)
		if err != nil {
			return err
		}
		*lines = append(*lines, "<table><tbody>")
		if rows != "" {
			*lines = append(*lines, rows)
		}
		*lines = append(*lines, "</tbody></table>")

	case document.Raw:
		*lines = append(*lines, n.Markup)

	default:
		inline, err := r.RenderInline([]document.Node{node})
		if err != nil {
			return err
		}
		*lines = append(*lines, inline)
	}
	return nil
}

// RenderInline converts an inline node sequence to markup. Table cells, list
// items, and patch fragments all route through here.
func (r *Renderer) RenderInline(nodes []document.Node) (string, error) {
	var b strings.Builder
	for _, node := range nodes {
		switch n := node.(type) {
		case document.Text:
			b.WriteString(EscapeText(n.Value))
		case document.Bold:
			inner, err := r.RenderInline(n.Children)
			if err != nil {
				return "", err
			}
			b.WriteString("<strong>" + inner + "</strong>")
		case document.Italic:
			inner, err := r.RenderInline(n.Children)
			if err != nil {
				return "", err
			}
			b.WriteString("<em>" + inner + "</em>")
		case document.InlineCode:
			b.WriteString("<code>" + EscapeText(n.Value) + "</code>")
		case document.Link:
			b.WriteString(`<a href="` + EscapeText(n.Target) + `">` + EscapeText(n.Text) + "</a>")
		case document.Image:
			b.WriteString(ImageMarkup(n))
		case document.Raw:
			b.WriteString(n.Markup)
		default:
			var lines []string
			if err := r.renderBlock(node, &lines); err != nil {
				return "", err
			}
			b.WriteString(strings.Join(lines, "\n"))
		}
	}
	return b.String(), nil
}

// RenderRows emits tr markup for a row sequence, one row per line. The table
// editor splices this output back between the original table delimiters.
func (r *Renderer) RenderRows(rows []document.Row) (string, error) {
	lines := make([]string, 0, len(rows))
	for _, row := range rows {
		var b strings.Builder
		b.WriteString("<tr>")
		for _, cell := range row.Cells {
			markup, err := r.renderCell(cell)
			if err != nil {
				return "", err
			}
			b.WriteString(markup)
		}
		b.WriteString("</tr>")
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (r *Renderer) renderCell(cell document.Cell) (string, error) {
	tag := "td"
	if cell.Header {
		tag = "th"
	}

	var attrs strings.Builder
	if span := document.SpanOf(cell.ColSpan); span > 1 {
		fmt.Fprintf(&attrs, ` colspan="%d"`, span)
	}
	if span := document.SpanOf(cell.RowSpan); span > 1 {
		fmt.Fprintf(&attrs, ` rowspan="%d"`, span)
	}

	highlight := NormalizeHighlight(cell.Highlight)
	if highlight != "" {
		attrs.WriteString(` class="highlight-#` + highlight + `"`)
	}
	if style := mergeHighlightStyle(cell.Style, highlight); style != "" {
		attrs.WriteString(` style="` + EscapeText(style) + `"`)
	}
	if highlight != "" {
		attrs.WriteString(` data-highlight-colour="#` + highlight + `"`)
	}

	inner, err := r.RenderInline(cell.Content)
	if err != nil {
		return "", err
	}
	return "<" + tag + attrs.String() + ">" + inner + "</" + tag + ">", nil
}

func (r *Renderer) codeMacro(block document.CodeBlock) string {
	var b strings.Builder
	b.WriteString(`<ac:structured-macro ac:name="` + codeMacroName + `">`)
	if lang := strings.TrimSpace(block.Language); lang != "" {
		b.WriteString(`<ac:parameter ac:name="language">` + EscapeText(lang) + `</ac:parameter>`)
	}
	b.WriteString("<ac:plain-text-body>" + wrapCDATA(block.Text) + "</ac:plain-text-body></ac:structured-macro>")
	return b.String()
}

func (r *Renderer) diagramMacro(block document.DiagramBlock) (string, error) {
	var name string
	switch block.Kind {
	case document.DiagramMermaid:
		name = r.macros.Mermaid
	case document.DiagramPlantUML:
		name = r.macros.PlantUML
	default:
		return "", &UnsupportedConstructError{Construct: "diagram kind " + string(block.Kind)}
	}
	return `<ac:structured-macro ac:name="` + name + `">` +
		"<ac:plain-text-body>" + wrapCDATA(block.Text) + "</ac:plain-text-body></ac:structured-macro>", nil
}

// ImageMarkup emits the storage form of a single image reference. Attachment
// targets resolve against the page, everything else is an external URL.
func ImageMarkup(img document.Image) string {
	var attrs string
	if img.Alt != "" {
		attrs = ` ac:alt="` + EscapeText(img.Alt) + `"`
	}
	ref := `<ri:url ri:value="` + EscapeText(img.Target) + `"/>`
	if img.Attachment {
		ref = `<ri:attachment ri:filename="` + EscapeText(img.Target) + `"/>`
	}
	return "<ac:image" + attrs + ">" + ref + "</ac:image>"
}

// NormalizeHighlight canonicalizes a highlight color to six lowercase hex
// digits without the leading hash. Invalid input normalizes to empty.
func NormalizeHighlight(color string) string {
	hex := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(color), "#"))
	if len(hex) != 6 {
		return ""
	}
	for _, r := range hex {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			return ""
		}
	}
	return hex
}

// mergeHighlightStyle rewrites the style declaration list so that the
// highlight's background-color is present exactly once, replacing any stale
// value.
func mergeHighlightStyle(style, highlight string) string {
	if highlight == "" {
		return strings.TrimSpace(style)
	}
	var kept []string
	for _, decl := range strings.Split(style, ";") {
		trimmed := strings.TrimSpace(decl)
		if trimmed == "" || strings.HasPrefix(strings.ToLower(trimmed), "background-color") {
			continue
		}
		kept = append(kept, trimmed)
	}
	merged := strings.Join(kept, ";")
	if merged != "" {
		merged += ";"
	}
	return merged + "background-color: #" + highlight + ";"
}
