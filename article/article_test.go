package article

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gotlas"
	"github.com/sirupsen/logrus"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Learning Spanish Verbs</title></head>
<body>
  <nav><a href="/">Home</a> <a href="/about">About</a></nav>
  <article>
    <h1>Learning Spanish Verbs</h1>
    <p>Spanish verbs change their endings to show who is doing the action and when it happens.
       Learners usually begin with the present tense of regular verbs ending in -ar, -er and -ir.</p>
    <p>Irregular verbs such as ser, estar and ir must be memorised, because their forms do not follow
       the usual patterns. Practising them in short sentences every day helps them stick.</p>
    <p>Once the present tense feels comfortable, the preterite and the imperfect open the door to
       telling stories about the past, which is where conversations become really interesting.</p>
  </article>
  <script>var tracking = "ignore me";</script>
  <footer>Copyright 2024</footer>
</body>
</html>`

func quietLogger() logrus.FieldLogger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func servePage(t *testing.T, status int, body string) (*httptest.Server, *http.Request) {
	t.Helper()
	var seen http.Request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = *r
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, &seen
}

func assertFetchFailed(t *testing.T, err error) {
	t.Helper()
	var te *gotlas.TranslationError
	if !errors.As(err, &te) {
		t.Fatalf("expected TranslationError, got %v", err)
	}
	if te.Message != gotlas.MsgArticleFetchFailed {
		t.Errorf("unexpected message %q", te.Message)
	}
}

func TestFetcher_Fetch(t *testing.T) {
	srv, seen := servePage(t, http.StatusOK, samplePage)
	f := NewFetcher(WithLogger(quietLogger()))

	a, err := f.Fetch(context.Background(), srv.URL+"/verbs")
	if err != nil {
		t.Fatalf("Fetch failed: %v", err)
	}

	if a.Title != "Learning Spanish Verbs" {
		t.Errorf("unexpected title %q", a.Title)
	}
	if !strings.Contains(a.Text, "Irregular verbs such as ser, estar and ir must be memorised") {
		t.Errorf("article text missing paragraph: %q", a.Text)
	}
	if strings.Contains(a.Text, "tracking") {
		t.Error("script content leaked into article text")
	}
	if strings.Contains(a.Text, "  ") {
		t.Error("expected whitespace to be collapsed")
	}
	if a.URL != srv.URL+"/verbs" || a.Truncated {
		t.Errorf("unexpected article metadata: %+v", a)
	}
	if seen.Header.Get("User-Agent") != DefaultUserAgent {
		t.Errorf("expected browser user agent, got %q", seen.Header.Get("User-Agent"))
	}
}

func TestFetcher_Truncates(t *testing.T) {
	srv, _ := servePage(t, http.StatusOK, samplePage)
	f := NewFetcher(WithLogger(quietLogger()), WithMaxRunes(40))

	a, err := f.Fetch(context.Background(), srv.URL)
	if err != nil {
		t.Fatal(err)
	}
	if !a.Truncated || len([]rune(a.Text)) != 40 {
		t.Errorf("expected 40 runes and truncated flag, got %d, %v", len([]rune(a.Text)), a.Truncated)
	}
}

func TestFetcher_Failures(t *testing.T) {
	notFound, _ := servePage(t, http.StatusNotFound, "gone")
	large, _ := servePage(t, http.StatusOK, strings.Repeat("<p>word</p>", 100))
	empty, _ := servePage(t, http.StatusOK, "<html><body><script>x()</script></body></html>")

	tests := []struct {
		name string
		url  string
		opts []Option
	}{
		{"invalid scheme", "ftp://example.com/file", nil},
		{"not a url", "::not a url", nil},
		{"missing host", "http://", nil},
		{"status", notFound.URL, nil},
		{"too large", large.URL, []Option{WithMaxBodySize(100)}},
		{"no text", empty.URL, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewFetcher(append([]Option{WithLogger(quietLogger())}, tt.opts...)...)
			a, err := f.Fetch(context.Background(), tt.url)
			if a != nil {
				t.Errorf("expected no article, got %+v", a)
			}
			assertFetchFailed(t, err)
		})
	}
}

func TestFetcher_ContextCanceled(t *testing.T) {
	srv, _ := servePage(t, http.StatusOK, samplePage)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewFetcher(WithLogger(quietLogger())).Fetch(ctx, srv.URL)

	assertFetchFailed(t, err)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected wrapped cancellation, got %v", err)
	}
}

func TestFetcher_ExtractWithoutURL(t *testing.T) {
	a, err := NewFetcher(WithLogger(quietLogger())).Extract([]byte(samplePage), nil)
	if err != nil {
		t.Fatal(err)
	}
	if a.URL != "" || !strings.Contains(a.Text, "preterite") {
		t.Errorf("unexpected article %+v", a)
	}
}
