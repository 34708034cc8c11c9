package document

import "strings"

// Node is the closed set of document tree variants produced by the markup and
// storage parsers. Implementations are value types owned exclusively by their
// parent; trees are rebuilt fresh on every conversion call and never share
// state across calls.
type Node interface {
	node()
}

// DiagramKind identifies the diagram language carried by a DiagramBlock.
type DiagramKind string

const (
	// DiagramPlantUML marks a PlantUML source block.
	DiagramPlantUML DiagramKind = "plantuml"
	// DiagramMermaid marks a Mermaid source block.
	DiagramMermaid DiagramKind = "mermaid"
)

// Text is a literal text run. The value is unescaped source text; escaping is
// applied at render time.
type Text struct {
	Value string
}

// Heading is a section heading with level 1 through 6.
type Heading struct {
	Level    int
	Children []Node
}

// Paragraph groups inline children into a block.
type Paragraph struct {
	Children []Node
}

// Bold wraps strongly emphasised inline content.
type Bold struct {
	Children []Node
}

// Italic wraps emphasised inline content.
type Italic struct {
	Children []Node
}

// InlineCode carries a literal code span. The value is never reinterpreted as
// markup in either direction.
type InlineCode struct {
	Value string
}

// Link is an anchor with literal display text.
type Link struct {
	Text   string
	Target string
}

// Image references either an uploaded attachment (by filename) or an external
// URL. Attachment reports which reference form the target uses; the two are
// mutually exclusive.
type Image struct {
	Alt        string
	Target     string
	Attachment bool
}

// List is a flat ordered or unordered list. Each item holds the inline
// content of one list entry.
type List struct {
	Ordered bool
	Items   [][]Node
}

// Quote is a block quotation.
type Quote struct {
	Children []Node
}

// CodeBlock is a fenced code block rendered through the code macro. Text is
// carried literally and never escaped.
type CodeBlock struct {
	Language string
	Text     string
}

// DiagramBlock is a fenced diagram source block rendered through the macro
// configured for its kind.
type DiagramBlock struct {
	Kind DiagramKind
	Text string
}

// Table is a grid of rows. Row 0 is the conventional header row when every
// cell in it is a header cell.
type Table struct {
	Rows []Row
}

// Row is an ordered sequence of cells.
type Row struct {
	Cells []Cell
}

// Cell is a single table cell. ColSpan and RowSpan are at least 1; a zero
// value is treated as 1. Highlight is a hex color of the form "#rrggbb" and,
// when set, renders as the class, data attribute, and inline style triple.
type Cell struct {
	Content   []Node
	Header    bool
	ColSpan   int
	RowSpan   int
	Style     string
	Highlight string
}

// Raw preserves markup with no structured mapping so round trips never drop
// unrecognized content.
type Raw struct {
	Markup string
}

func (Text) node()         {}
func (Heading) node()      {}
func (Paragraph) node()    {}
func (Bold) node()         {}
func (Italic) node()       {}
func (InlineCode) node()   {}
func (Link) node()         {}
func (Image) node()        {}
func (List) node()         {}
func (Quote) node()        {}
func (CodeBlock) node()    {}
func (DiagramBlock) node() {}
func (Table) node()        {}
func (Row) node()          {}
func (Cell) node()         {}
func (Raw) node()          {}

// ImageRef identifies an image reference extracted from a document body.
// Target is a filename for attachment references and a URL otherwise.
type ImageRef struct {
	Target     string
	Attachment bool
}

// SpanOf normalizes a declared span attribute to its effective value.
func SpanOf(declared int) int {
	if declared < 1 {
		return 1
	}
	return declared
}

// Walk visits every node of the tree in depth-first order, descending into
// inline children, list items, and table cells. The visit callback returns
// false to stop the walk.
func Walk(nodes []Node, visit func(Node) bool) bool {
	for _, n := range nodes {
		if !visit(n) {
			return false
		}
		switch typed := n.(type) {
		case Heading:
			if !Walk(typed.Children, visit) {
				return false
			}
		case Paragraph:
			if !Walk(typed.Children, visit) {
				return false
			}
		case Bold:
			if !Walk(typed.Children, visit) {
				return false
			}
		case Italic:
			if !Walk(typed.Children, visit) {
				return false
			}
		case Quote:
			if !Walk(typed.Children, visit) {
				return false
			}
		case List:
			for _, item := range typed.Items {
				if !Walk(item, visit) {
					return false
				}
			}
		case Table:
			for _, row := range typed.Rows {
				for _, cell := range row.Cells {
					if !Walk(cell.Content, visit) {
						return false
					}
				}
			}
		}
	}
	return true
}

// PlainText flattens the inline content of the supplied nodes into a single
// string, dropping formatting. Useful for table summaries and log output.
func PlainText(nodes []Node) string {
	var b strings.Builder
	writePlainText(&b, nodes)
	return b.String()
}

func writePlainText(b *strings.Builder, nodes []Node) {
	for _, n := range nodes {
		switch typed := n.(type) {
		case Text:
			b.WriteString(typed.Value)
		case InlineCode:
			b.WriteString(typed.Value)
		case Link:
			b.WriteString(typed.Text)
		case Image:
			b.WriteString(typed.Alt)
		case Bold:
			writePlainText(b, typed.Children)
		case Italic:
			writePlainText(b, typed.Children)
		case Heading:
			writePlainText(b, typed.Children)
		case Paragraph:
			writePlainText(b, typed.Children)
		case Quote:
			writePlainText(b, typed.Children)
		case Raw:
			b.WriteString(typed.Markup)
		}
	}
}

// Images collects every image reference in the tree in document order.
func Images(nodes []Node) []ImageRef {
	var refs []ImageRef
	Walk(nodes, func(n Node) bool {
		if img, ok := n.(Image); ok {
			refs = append(refs, ImageRef{Target: img.Target, Attachment: img.Attachment})
		}
		return true
	})
	return refs
}
