package cli

import (
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ZaguanLabs/gotlas"
	"github.com/ZaguanLabs/gotlas/article"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articlePage = `<html><head><title>Morning Routines</title></head><body><article>
<p>Many people start the day with a cup of coffee and a quick look at the news before heading out to work.</p>
<p>Others prefer a slow breakfast, a short walk around the block and a few minutes of quiet reading.</p>
<p>Whatever the routine, keeping it consistent makes the rest of the day feel calmer and more productive.</p>
</article></body></html>`

var articleItems = []gotlas.VocabularyItem{
	{Word: "heading out", Translation: "salir", Explanation: "phrasal verb", ExampleSource: "I'm heading out.", ExampleTarget: "Ya salgo."},
	{Word: "consistent", Translation: "constante", Explanation: "adjective"},
}

func TestArticleCommand_URL(t *testing.T) {
	app, mock := newTestApp(t)
	mock.Items = articleItems

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		io.WriteString(w, articlePage)
	}))
	defer srv.Close()
	app.Fetcher = article.NewFetcher(article.WithLogger(app.Log))

	csvPath := filepath.Join(t.TempDir(), "items.csv")
	out, errOut, err := execute(t, app, "article", srv.URL, "--level", "beginner", "--save", "--csv", csvPath)
	require.NoError(t, err)

	assert.Contains(t, errOut, "Fetched: Morning Routines")
	assert.Contains(t, out, "1. heading out = salir")
	assert.Contains(t, out, "Ya salgo.")
	assert.Contains(t, errOut, "Saved 2 of 2 items to vocabulary.")

	_, vocab, _ := app.Stores()
	e, ok := vocab.Find("heading out", "en", "es")
	require.True(t, ok)
	assert.Equal(t, "phrasal verb\n\nExample: I'm heading out.", e.Notes)

	data, err := os.ReadFile(csvPath)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "Word/Phrase,Translation,Explanation,Example (Source),Example (Target)\n"))
}

func TestArticleCommand_FileAndStdin(t *testing.T) {
	app, mock := newTestApp(t)
	mock.Items = articleItems

	path := filepath.Join(t.TempDir(), "story.txt")
	require.NoError(t, os.WriteFile(path, []byte("Some article text."), 0600))

	out, _, err := execute(t, app, "article", path)
	require.NoError(t, err)
	assert.Contains(t, out, "2. consistent = constante")

	app.In = strings.NewReader("Text from stdin.")
	_, _, err = execute(t, app, "article")
	require.NoError(t, err)

	_, vocab, _ := app.Stores()
	assert.Zero(t, vocab.Len(), "items are only saved with --save")
}

func TestArticleCommand_Failures(t *testing.T) {
	app, _ := newTestApp(t)

	_, _, err := execute(t, app, "article", "--level", "expert")
	assert.Error(t, err)

	_, _, err = execute(t, app, "article")
	assert.Equal(t, gotlas.MsgEmptyArticle, gotlas.UserMessage(err, ""))

	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()
	_, _, err = execute(t, app, "article", srv.URL)
	assert.Equal(t, gotlas.MsgArticleFetchFailed, gotlas.UserMessage(err, ""))
}
