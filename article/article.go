// Package article fetches web articles and reduces them to plain text for
// vocabulary mining.
package article

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ZaguanLabs/gotlas"
	readability "github.com/go-shiori/go-readability"
	"github.com/sirupsen/logrus"
)

const (
	// DefaultMaxBodySize caps how much HTML is read from a page.
	DefaultMaxBodySize = 10 * 1024 * 1024

	// DefaultUserAgent is a desktop browser; many sites block unknown agents.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Article is the readable content of a fetched page.
type Article struct {
	URL       string
	Title     string
	Byline    string
	SiteName  string
	Text      string
	Truncated bool // Text was cut to the rune limit
}

// Fetcher downloads pages and extracts their main text.
type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	maxRunes  int
	log       logrus.FieldLogger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) {
		f.client = c
	}
}

// WithUserAgent overrides the browser User-Agent.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodySize sets the response size limit in bytes.
func WithMaxBodySize(n int64) Option {
	return func(f *Fetcher) {
		f.maxBody = n
	}
}

// WithMaxRunes sets how many runes of text are kept.
func WithMaxRunes(n int) Option {
	return func(f *Fetcher) {
		f.maxRunes = n
	}
}

// WithLogger sets the logger.
func WithLogger(l logrus.FieldLogger) Option {
	return func(f *Fetcher) {
		f.log = l
	}
}

// NewFetcher creates a fetcher with a 30 second timeout.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client:    &http.Client{Timeout: 30 * time.Second},
		userAgent: DefaultUserAgent,
		maxBody:   DefaultMaxBodySize,
		maxRunes:  gotlas.MaxArticleLength,
		log:       logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch downloads rawURL and returns its readable text. Every failure is a
// *gotlas.TranslationError carrying MsgArticleFetchFailed.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (*Article, error) {
	log := f.log.WithField("url", rawURL)

	u, err := url.Parse(rawURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fetchFailed(fmt.Errorf("invalid article URL %q", rawURL))
	}

	body, err := f.download(ctx, u)
	if err != nil {
		log.WithError(err).Warn("article download failed")
		return nil, fetchFailed(err)
	}

	a, err := f.Extract(body, u)
	if err != nil {
		log.WithError(err).Warn("article extraction failed")
		return nil, err
	}

	log.WithFields(logrus.Fields{
		"title":     a.Title,
		"runes":     len([]rune(a.Text)),
		"truncated": a.Truncated,
	}).Debug("article fetched")
	return a, nil
}

func (f *Fetcher) download(ctx context.Context, u *url.URL) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	if resp.ContentLength > f.maxBody {
		return nil, fmt.Errorf("content length %d exceeds limit of %d bytes", resp.ContentLength, f.maxBody)
	}

	// Read one byte past the limit to tell a full body from a truncated one.
	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBody+1))
	if err != nil {
		return nil, fmt.Errorf("reading body: %w", err)
	}
	if int64(len(body)) > f.maxBody {
		return nil, fmt.Errorf("body exceeds limit of %d bytes", f.maxBody)
	}
	return body, nil
}

// Extract pulls the main text out of an HTML page. u may be nil.
func (f *Fetcher) Extract(body []byte, u *url.URL) (*Article, error) {
	a := &Article{}
	if u != nil {
		a.URL = u.String()
	} else {
		u = &url.URL{}
	}

	parsed, err := readability.FromReader(bytes.NewReader(body), u)
	if err == nil {
		a.Title = parsed.Title
		a.Byline = parsed.Byline
		a.SiteName = parsed.SiteName
		a.Text = collapseWhitespace(parsed.TextContent)
	} else {
		f.log.WithError(err).Debug("readability failed, using paragraph fallback")
	}

	if a.Text == "" {
		title, text, ferr := fallbackText(body)
		if ferr != nil {
			return nil, fetchFailed(ferr)
		}
		if a.Title == "" {
			a.Title = title
		}
		a.Text = text
	}

	if a.Text == "" {
		return nil, fetchFailed(fmt.Errorf("no readable text found"))
	}

	if len([]rune(a.Text)) > f.maxRunes {
		a.Text = gotlas.TruncateRunes(a.Text, f.maxRunes)
		a.Truncated = true
	}
	return a, nil
}

func fetchFailed(err error) error {
	return &gotlas.TranslationError{Message: gotlas.MsgArticleFetchFailed, Cause: err}
}
