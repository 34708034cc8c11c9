package storage

import "testing"

func TestEscapeText(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		in   string
		want string
	}{
		{name: "plain_ampersand", in: "bread & butter", want: "bread &amp; butter"},
		{name: "angle_brackets", in: "a < b > c", want: "a &lt; b &gt; c"},
		{name: "named_entity_survives", in: "dash &mdash; here", want: "dash &mdash; here"},
		{name: "decimal_entity_survives", in: "dash &#8212; here", want: "dash &#8212; here"},
		{name: "hex_entity_survives", in: "quote &#x27; here", want: "quote &#x27; here"},
		{name: "bare_entity_like_text", in: "AT&T; maybe", want: "AT&T; maybe"},
		{name: "mixed", in: "&mdash; & <tag>", want: "&mdash; &amp; &lt;tag&gt;"},
		{name: "empty", in: "", want: ""},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := EscapeText(tc.in); got != tc.want {
				t.Fatalf("expected %q got %q", tc.want, got)
			}
		})
	}
}

func TestEscapeText_UnescapeInverts(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"a & b", "x < y", `say "hi"`, "it's"} {
		if got := UnescapeText(EscapeText(in)); got != in {
			t.Fatalf("expected %q to survive escape round trip, got %q", in, got)
		}
	}
}

func TestWrapCDATA_SplitsTerminator(t *testing.T) {
	t.Parallel()

	text := "if (a[0]]]> b) {}"
	wrapped := wrapCDATA(text)
	if wrapped != "<![CDATA[if (a[0]]]]><![CDATA[> b) {}]]>" {
		t.Fatalf("unexpected CDATA wrapping: %q", wrapped)
	}

	inner := wrapped[len("<![CDATA[") : len(wrapped)-len("]]>")]
	if got := unwrapCDATA(inner); got != text {
		t.Fatalf("expected %q got %q", text, got)
	}
}
