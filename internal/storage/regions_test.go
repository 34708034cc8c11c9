package storage

import (
	"strings"
	"testing"
)

func TestTableRegions(t *testing.T) {
	t.Parallel()

	body := `<p>before</p>` +
		`<table class="wide"><colgroup><col/></colgroup><tbody><tr><th>A</th></tr><tr><td>1</td></tr></tbody></table>` +
		`<p>between</p>` +
		`<table><tbody><tr><td>x</td></tr></tbody></table>`

	regions := TableRegions(body)
	if len(regions) != 2 {
		t.Fatalf("expected 2 regions, got %d", len(regions))
	}

	first := regions[0]
	if got := body[first.Start:first.End]; !strings.HasPrefix(got, `<table class="wide">`) || !strings.HasSuffix(got, "</table>") {
		t.Fatalf("unexpected first region span: %q", got)
	}
	if got := first.Rows(body); got != "<tr><th>A</th></tr><tr><td>1</td></tr>" {
		t.Fatalf("unexpected rows fragment: %q", got)
	}

	spliced := first.Splice(body, "<tr><th>B</th></tr>")
	if !strings.Contains(spliced, `<table class="wide"><colgroup><col/></colgroup><tbody><tr><th>B</th></tr></tbody></table>`) {
		t.Fatalf("expected splice to preserve table chrome, got %q", spliced)
	}
	if !strings.Contains(spliced, "<p>between</p>") || !strings.Contains(spliced, "<tr><td>x</td></tr>") {
		t.Fatalf("expected surrounding content untouched, got %q", spliced)
	}
}

func TestTableRegions_EmptyTableInsertionPoint(t *testing.T) {
	t.Parallel()

	body := `<table><tbody></tbody></table>`
	regions := TableRegions(body)
	if len(regions) != 1 {
		t.Fatalf("expected 1 region, got %d", len(regions))
	}
	r := regions[0]
	if r.RowsStart != r.RowsEnd {
		t.Fatalf("expected empty rows range, got [%d,%d)", r.RowsStart, r.RowsEnd)
	}
	if got := r.Splice(body, "<tr><td>x</td></tr>"); got != `<table><tbody><tr><td>x</td></tr></tbody></table>` {
		t.Fatalf("unexpected splice into empty table: %q", got)
	}
}

func TestTableRegions_NestedTableStaysInside(t *testing.T) {
	t.Parallel()

	body := `<table><tbody><tr><td><table><tbody><tr><td>inner</td></tr></tbody></table></td></tr></tbody></table>`
	regions := TableRegions(body)
	if len(regions) != 1 {
		t.Fatalf("expected nested table to stay in outer region, got %d regions", len(regions))
	}
	if regions[0].Start != 0 || regions[0].End != len(body) {
		t.Fatalf("expected region to cover whole document, got [%d,%d)", regions[0].Start, regions[0].End)
	}
}
