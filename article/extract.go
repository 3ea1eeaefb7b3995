package article

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// skippedTags never contain article prose.
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"nav":      true,
	"header":   true,
	"footer":   true,
	"aside":    true,
	"form":     true,
	"iframe":   true,
	"svg":      true,
	"rt":       true,
}

// fallbackText returns the page title and its paragraph text. When a page has
// no <p> elements the text nodes of <body> are used instead.
func fallbackText(body []byte) (string, string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", "", err
	}

	title := strings.TrimSpace(doc.Find("title").First().Text())

	var paragraphs []string
	doc.Find("p").Each(func(_ int, s *goquery.Selection) {
		if s.ParentsFiltered(skippedSelector()).Length() > 0 {
			return
		}
		if text := squeeze(s.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})
	if len(paragraphs) > 0 {
		return title, strings.Join(paragraphs, "\n\n"), nil
	}

	var blocks []string
	for _, n := range doc.Find("body").Nodes {
		blocks = append(blocks, textNodes(n)...)
	}
	return title, strings.Join(blocks, "\n\n"), nil
}

func skippedSelector() string {
	tags := make([]string, 0, len(skippedTags))
	for tag := range skippedTags {
		tags = append(tags, tag)
	}
	return strings.Join(tags, ",")
}

// textNodes walks the DOM and collects trimmed text outside skipped tags.
func textNodes(root *html.Node) []string {
	var out []string

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && skippedTags[strings.ToLower(n.Data)] {
			return
		}
		if n.Type == html.TextNode {
			if text := squeeze(n.Data); text != "" {
				out = append(out, text)
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)

	return out
}

// collapseWhitespace squeezes runs of spaces inside each line and separates
// non-empty lines with a blank line.
func collapseWhitespace(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if line = squeeze(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n\n")
}

func squeeze(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
