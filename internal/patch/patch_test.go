package patch

import (
	"errors"
	"strings"
	"testing"

	"github.com/goliatone/go-confluence/internal/storage"
)

func newTestPatcher() *Patcher {
	return NewPatcher(storage.DefaultMacroNames())
}

func TestPatcher_ReplacesFirstOccurrenceOnly(t *testing.T) {
	t.Parallel()

	body := `<p>status: open</p><p>details</p><p>status: open</p>`

	got, err := newTestPatcher().Apply(body, "<p>status: open</p>", "<p>status: closed</p>")
	if err != nil {
		t.Fatalf("expected patch to succeed, got %v", err)
	}
	if got.Matches != 2 {
		t.Fatalf("expected 2 matches, got %d", got.Matches)
	}

	want := `<p>status: closed</p><p>details</p><p>status: open</p>`
	if got.Body != want {
		t.Fatalf("expected body\n%s\ngot\n%s", want, got.Body)
	}
}

func TestPatcher_MissingFragment(t *testing.T) {
	t.Parallel()

	got, err := newTestPatcher().Apply(`<p>hello</p>`, "<p>absent</p>", "<p>x</p>")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
	if got.Body != "" || got.Matches != 0 {
		t.Fatalf("expected zero result on failure, got %#v", got)
	}

	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("expected typed not found error, got %T", err)
	}
	if !strings.Contains(nf.Fragment, "<p>absent</p>") {
		t.Fatalf("expected error to carry the fragment, got %q", nf.Fragment)
	}
}

func TestPatcher_EmptyOldFragment(t *testing.T) {
	t.Parallel()

	if _, err := newTestPatcher().Apply(`<p>hello</p>`, "", "<p>x</p>"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected not found error, got %v", err)
	}
}

func TestPatcher_MarkdownReplacement(t *testing.T) {
	t.Parallel()

	body := `<h1>Title</h1><p>old section</p>`

	got, err := newTestPatcher().Apply(body, "<p>old section</p>", "## Done\n- item")
	if err != nil {
		t.Fatalf("expected patch to succeed, got %v", err)
	}

	want := `<h1>Title</h1><h2>Done</h2>` + "\n" + `<ul>` + "\n" + `<li>item</li>` + "\n" + `</ul>`
	if got.Body != want {
		t.Fatalf("expected body\n%s\ngot\n%s", want, got.Body)
	}
}

func TestPatcher_MarkupReplacementKeepsShape(t *testing.T) {
	t.Parallel()

	body := `<p>before</p><p>target</p>`

	got, err := newTestPatcher().Apply(body, "<p>target</p>", "<p>kept <em>as is</em></p>")
	if err != nil {
		t.Fatalf("expected patch to succeed, got %v", err)
	}
	if want := `<p>before</p><p>kept <em>as is</em></p>`; got.Body != want {
		t.Fatalf("expected body\n%s\ngot\n%s", want, got.Body)
	}
}

func TestPatcher_ShorthandExpandsInsideMarkup(t *testing.T) {
	t.Parallel()

	body := `<p>target</p>`

	got, err := newTestPatcher().Apply(body, "<p>target</p>", "<p>see [image:chart.png]</p>")
	if err != nil {
		t.Fatalf("expected patch to succeed, got %v", err)
	}

	want := `<p>see <ac:image><ri:attachment ri:filename="chart.png"/></ac:image></p>`
	if got.Body != want {
		t.Fatalf("expected body\n%s\ngot\n%s", want, got.Body)
	}
}

func TestPatcher_EmptyReplacementDeletes(t *testing.T) {
	t.Parallel()

	body := `<p>keep</p><p>drop</p>`

	got, err := newTestPatcher().Apply(body, "<p>drop</p>", "")
	if err != nil {
		t.Fatalf("expected patch to succeed, got %v", err)
	}
	if want := `<p>keep</p>`; got.Body != want {
		t.Fatalf("expected body\n%s\ngot\n%s", want, got.Body)
	}
}
