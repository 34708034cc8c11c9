package storage

import "strings"

// TableRegion locates one table in a storage document: the full element span
// and the inner span occupied by its rows. Both are byte ranges into the
// original document, so an editor can splice a rewritten row block back in
// while leaving the table's own attributes, colgroup, and body wrappers
// untouched.
type TableRegion struct {
	Start, End         int
	RowsStart, RowsEnd int
}

// Rows returns the raw row fragment of the region.
func (r TableRegion) Rows(body string) string {
	return body[r.RowsStart:r.RowsEnd]
}

// Splice rebuilds the document with the region's row fragment replaced.
func (r TableRegion) Splice(body, rows string) string {
	return body[:r.RowsStart] + rows + body[r.RowsEnd:]
}

// TableRegions scans a storage document for top-level tables, in document
// order. Tables nested inside cells stay part of their outer table's region.
// A table with no closing tag terminates the scan.
func TableRegions(body string) []TableRegion {
	var regions []TableRegion

	i := 0
	for i < len(body) {
		lt := strings.IndexByte(body[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		if !tagNamed(body[pos:], "table") {
			i = pos + 1
			continue
		}
		openEnd := strings.IndexByte(body[pos:], '>')
		if openEnd < 0 {
			break
		}
		bodyFrom := pos + openEnd + 1
		inner, next, ok := matchClose(body, bodyFrom, "table")
		if !ok {
			break
		}

		region := TableRegion{Start: pos, End: next}
		region.RowsStart, region.RowsEnd = rowSpan(body, bodyFrom, bodyFrom+len(inner))
		regions = append(regions, region)
		i = next
	}
	return regions
}

// rowSpan finds the byte range covering the tr sequence inside a table body.
// When the table holds no rows, the empty range marks the insertion point
// just after the tbody (or table) opening tag.
func rowSpan(body string, from, to int) (int, int) {
	inner := body[from:to]
	first, last := -1, -1

	i := 0
	for i < len(inner) {
		lt := strings.IndexByte(inner[i:], '<')
		if lt < 0 {
			break
		}
		pos := i + lt
		if !tagNamed(inner[pos:], "tr") {
			i = pos + 1
			continue
		}
		openEnd := strings.IndexByte(inner[pos:], '>')
		if openEnd < 0 {
			break
		}
		_, next, ok := matchClose(inner, pos+openEnd+1, "tr")
		if !ok {
			break
		}
		if first < 0 {
			first = pos
		}
		last = next
		i = next
	}

	if first >= 0 {
		return from + first, from + last
	}
	if idx := strings.Index(inner, "<tbody"); idx >= 0 {
		if openEnd := strings.IndexByte(inner[idx:], '>'); openEnd >= 0 {
			point := from + idx + openEnd + 1
			return point, point
		}
	}
	return from, from
}
