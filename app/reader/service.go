// Package reader enriches a headline for the detail view: it downloads
// the article page, extracts its readable text and optionally summarizes it.
package reader

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/pkg/logx"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

// ErrNoURL is returned when the article has no link to read.
var ErrNoURL = errors.New("article has no url")

// Detail is an article prepared for the detail view.
type Detail struct {
	news.Article
	Text         string // readable text of the page, empty if not extracted
	BulletPoints string // summary, empty if summarizer is disabled
}

// Service prepares article details.
type Service struct {
	log        *slog.Logger
	cl         *requester.Requester
	extractor  Extractor
	summarizer *ChatGPT
}

// NewService creates new service. Summarizer may be nil.
func NewService(lg *slog.Logger, cl http.Client, summarizer *ChatGPT) *Service {
	return &Service{
		log: lg,
		cl: requester.New(cl,
			middleware.Header("User-Agent", "Mozilla/5.0 (compatible; headlines)"),
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{Level: slog.LevelDebug}),
		),
		summarizer: summarizer,
	}
}

// SummaryCacheStat returns summary cache stats.
func (s *Service) SummaryCacheStat() (cache.Stats, bool) {
	if s.summarizer == nil {
		return cache.Stats{}, false
	}
	return s.summarizer.CacheStat(), true
}

// Read downloads the article page and extracts its text.
// A failed summary is logged and leaves BulletPoints empty.
func (s *Service) Read(ctx context.Context, a news.Article) (Detail, error) {
	if a.URL == nil || *a.URL == "" {
		return Detail{}, ErrNoURL
	}

	u, err := url.Parse(*a.URL)
	if err != nil {
		return Detail{}, fmt.Errorf("parse article url: %w", err)
	}

	s.log.DebugCtx(ctx, "reading article", slog.String("url", u.String()))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), http.NoBody)
	if err != nil {
		return Detail{}, fmt.Errorf("build request: %w", err)
	}

	resp, err := s.cl.Do(req)
	if err != nil {
		return Detail{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			s.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Detail{}, fmt.Errorf("bad status code: %d", resp.StatusCode)
	}

	page, err := s.extractor.Extract(resp.Body, u)
	if err != nil {
		return Detail{}, fmt.Errorf("extract article: %w", err)
	}

	d := Detail{Article: a, Text: page.Text}
	if s.summarizer == nil {
		return d, nil
	}

	if page.Title == "" {
		page.Title = news.Value(a.Title)
	}

	if d.BulletPoints, err = s.summarizer.BulletPoints(ctx, u.String(), page); err != nil {
		s.log.WarnCtx(ctx, "failed to get bullet points, showing text only",
			slog.String("url", u.String()), slog.Any("err", err))
	}

	return d, nil
}
