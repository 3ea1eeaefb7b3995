package article

import (
	"strings"
	"testing"
)

func TestFallbackText_Paragraphs(t *testing.T) {
	page := `<html><head><title> Daily News </title></head><body>
		<nav><p>Menu item</p></nav>
		<p>First   paragraph
		   continues here.</p>
		<div><p>Second paragraph.</p></div>
		<footer><p>Footer text</p></footer>
	</body></html>`

	title, text, err := fallbackText([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	if title != "Daily News" {
		t.Errorf("unexpected title %q", title)
	}
	want := "First paragraph continues here.\n\nSecond paragraph."
	if text != want {
		t.Errorf("expected %q, got %q", want, text)
	}
}

func TestFallbackText_BodyTextNodes(t *testing.T) {
	page := `<html><body>
		<div>Just some <b>bold</b> words</div>
		<script>alert("no")</script>
		<style>.x{}</style>
		<span>and a span</span>
	</body></html>`

	_, text, err := fallbackText([]byte(page))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(text, "alert") || strings.Contains(text, ".x{}") {
		t.Errorf("skipped tags leaked: %q", text)
	}
	for _, part := range []string{"Just some", "bold", "words", "and a span"} {
		if !strings.Contains(text, part) {
			t.Errorf("expected %q in %q", part, text)
		}
	}
}

func TestCollapseWhitespace(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"  one   two  ", "one two"},
		{"line one\n\n\n   line\ttwo  \n", "line one\n\nline two"},
		{"\n \n\t\n", ""},
	}

	for _, tt := range tests {
		if got := collapseWhitespace(tt.in); got != tt.want {
			t.Errorf("collapseWhitespace(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
