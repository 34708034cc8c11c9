// Package patch rewrites page bodies by exact substring replacement. A patch
// whose target is missing fails with ErrNotFound rather than falling back to
// a full overwrite, so a stale fragment can never clobber a page.
package patch

import (
	"strings"

	"github.com/goliatone/go-confluence/internal/fragment"
	"github.com/goliatone/go-confluence/internal/storage"
)

const fragmentPreviewLimit = 120

// Result reports a successful patch. Matches counts how often the old
// fragment occurred in the body; only the first occurrence was replaced, so
// callers can warn when the target was not unique.
type Result struct {
	Body    string
	Matches int
}

// Patcher replaces one exact fragment of a page body at a time.
type Patcher struct {
	content *fragment.Normalizer
}

func NewPatcher(macros storage.MacroNames) *Patcher {
	return &Patcher{content: fragment.NewNormalizer(macros)}
}

// Apply replaces the first occurrence of oldFragment with newFragment.
// The old fragment matches literally against the stored body. The new
// fragment accepts markdown or ready-made markup; image shorthand expands
// in either form, and an empty new fragment deletes the match.
func (p *Patcher) Apply(body, oldFragment, newFragment string) (Result, error) {
	matches := 0
	if oldFragment != "" {
		matches = strings.Count(body, oldFragment)
	}
	if matches == 0 {
		return Result{}, &NotFoundError{Fragment: preview(oldFragment)}
	}

	replacement, err := p.content.Body(newFragment)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Body:    strings.Replace(body, oldFragment, replacement, 1),
		Matches: matches,
	}, nil
}

func preview(fragment string) string {
	flat := strings.Join(strings.Fields(fragment), " ")
	runes := []rune(flat)
	if len(runes) <= fragmentPreviewLimit {
		return flat
	}
	return string(runes[:fragmentPreviewLimit]) + "..."
}
