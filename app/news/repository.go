package news

import (
	"context"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Repository provides ordered headlines of a source.
type Repository struct {
	cl FeedClient
}

// NewRepository makes a new Repository over the given feed client.
func NewRepository(cl FeedClient) *Repository {
	return &Repository{cl: cl}
}

// GetHeadlines returns the headlines of the source, newest first.
// Headlines without a publication date go last, ties keep the feed order.
// Errors of the feed client are returned as is.
func (r *Repository) GetHeadlines(ctx context.Context, sourceID, apiKey string) ([]Article, error) {
	p, err := r.cl.TopHeadlines(ctx, sourceID, apiKey)
	if err != nil {
		return nil, err
	}

	articles := lo.Map(p.Articles, func(a RawArticle, _ int) Article {
		return Article{
			Title:       a.Title,
			Description: a.Description,
			Content:     a.Content,
			ImageURL:    a.URLToImage,
			PublishedAt: a.PublishedAt,
			URL:         a.URL,
		}
	})

	slices.SortStableFunc(articles, newerFirst)

	return articles, nil
}

// newerFirst compares ISO-8601 timestamps as strings, nil is the oldest.
func newerFirst(a, b Article) bool {
	if a.PublishedAt == nil {
		return false
	}
	if b.PublishedAt == nil {
		return true
	}
	return *a.PublishedAt > *b.PublishedAt
}
