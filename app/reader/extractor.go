package reader

import (
	"fmt"
	"io"
	"net/url"
	"regexp"
	"strings"

	"github.com/go-shiori/go-readability"
)

// Page is the readable part of an article web page.
type Page struct {
	Title   string `json:"title"`
	Excerpt string `json:"excerpt"`
	Text    string `json:"text"`
	Author  string `json:"author"`
	Image   string `json:"image"`
}

// Extractor extracts readable text from HTML pages.
type Extractor struct{}

var spaces = regexp.MustCompile(`\s+`)

// Extract parses the page located at pageURL.
func (e Extractor) Extract(rd io.Reader, pageURL *url.URL) (Page, error) {
	doc, err := readability.FromReader(rd, pageURL)
	if err != nil {
		return Page{}, fmt.Errorf("parse html: %w", err)
	}

	return Page{
		Title:   doc.Title,
		Excerpt: doc.Excerpt,
		Text:    e.sanitize(doc.TextContent),
		Author:  doc.Byline,
		Image:   doc.Image,
	}, nil
}

func (e Extractor) sanitize(s string) string {
	// nbsp
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}
