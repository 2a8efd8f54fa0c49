package render

import (
	"bytes"
	"testing"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var src = news.Source{ID: "bbc-news", Name: "BBC News"}

var articles = []news.Article{
	{
		Title:       lo.ToPtr("First"),
		Description: lo.ToPtr("first description"),
		PublishedAt: lo.ToPtr("2024-01-15T10:30:00Z"),
	},
	{Title: lo.ToPtr("Second")},
}

func renderState(t *testing.T, r Renderer, s headlines.State) string {
	buf := &bytes.Buffer{}
	require.NoError(t, r.State(buf, src, s))
	return buf.String()
}

func TestPlain_State(t *testing.T) {
	r := Plain()

	assert.Equal(t, "Loading BBC News headlines...\n", renderState(t, r, headlines.Loading{}))
	assert.Equal(t, "Failed to load headlines: Network error\n",
		renderState(t, r, headlines.Error{Message: "Network error"}))

	assert.Equal(t, "BBC News top headlines\n"+
		"\n1. First [15 Jan 2024]\n   first description\n"+
		"\n2. Second\n",
		renderState(t, r, headlines.Success{Articles: articles}))

	assert.Equal(t, "BBC News top headlines\n\nNo headlines.\n",
		renderState(t, r, headlines.Success{}))
}

type unknownState struct{ headlines.Loading }

func TestRenderer_UnknownState(t *testing.T) {
	err := Plain().State(&bytes.Buffer{}, src, unknownState{})
	assert.EqualError(t, err, "unknown state render.unknownState")
}

func TestMarkdown_State(t *testing.T) {
	r := Markdown(0)

	out := renderState(t, r, headlines.Success{Articles: []news.Article{{
		Title:       lo.ToPtr("Prices [up] *again* (update) ~5% > before"),
		PublishedAt: lo.ToPtr("2024-02-29T12:00:00Z"),
	}}})
	assert.Equal(t, "*BBC News*\n\n1. *Prices \\[up] \\*again\\* (update) ~5% > before* _29 Feb 2024_\n", out)

	assert.Equal(t, "Failed to load headlines: bad\\_key", renderState(t, r, headlines.Error{Message: "bad_key"}))
	assert.Equal(t, "*BBC News*\n\nNo headlines.", renderState(t, r, headlines.Success{Articles: []news.Article{}}))
}

func TestPlain_Detail(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Plain().Detail(buf, reader.Detail{Article: news.Article{
		Title:       lo.ToPtr("First"),
		Description: lo.ToPtr("first description"),
		Content:     lo.ToPtr("Some news content… [+780 chars]"),
		ImageURL:    lo.ToPtr("https://example.com/1.jpg"),
		PublishedAt: lo.ToPtr("2024-01-15T10:30:00Z"),
		URL:         lo.ToPtr("https://example.com/1"),
	}})
	require.NoError(t, err)

	assert.Equal(t, "First\n15 Jan 2024\n\nfirst description\n\nSome news content\n\n"+
		"Image: https://example.com/1.jpg\nLink: https://example.com/1\n", buf.String())
}

func TestPlain_Detail_AbsentFields(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, Plain().Detail(buf, reader.Detail{Article: news.Article{PublishedAt: lo.ToPtr("2024-01-15")}}))
	assert.Equal(t, "(untitled)\n", buf.String())
}

func TestMarkdown_Detail(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Markdown(10).Detail(buf, reader.Detail{
		Article: news.Article{
			Title:   lo.ToPtr("First"),
			Content: lo.ToPtr("ignored when text is present"),
			URL:     lo.ToPtr("https://example.com/1"),
		},
		Text:         "full readable text of the page",
		BulletPoints: "- point_one",
	})
	require.NoError(t, err)

	assert.Equal(t, "*First*\n\nfull reada…\n\n*Summary*\n- point\\_one\n\n[source](https://example.com/1)", buf.String())
}

func TestMarkdown_Detail_Link(t *testing.T) {
	buf := &bytes.Buffer{}
	err := Markdown(0).Detail(buf, reader.Detail{Article: news.Article{
		Title: lo.ToPtr("Storm (update)"),
		URL:   lo.ToPtr("https://en.wikipedia.org/wiki/Storm_(disambiguation)"),
	}})
	require.NoError(t, err)

	assert.Equal(t, "*Storm (update)*\n\n"+
		"[source](https://en.wikipedia.org/wiki/Storm%5F%28disambiguation%29)", buf.String())
}

func TestEscapeMarkdown(t *testing.T) {
	assert.Equal(t, "a\\_b \\*c\\* \\`d\\` \\[e] (f) ~g >h", EscapeMarkdown("a_b *c* `d` [e] (f) ~g >h"))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 0))
	assert.Equal(t, "abc", truncate("abc", 3))
	assert.Equal(t, "ab…", truncate("abc", 2))
	assert.Equal(t, "привет…", truncate("привет мир", 6))
}
