// Package news contains the headline model, the feed client and the
// repository that turns raw feed payloads into ordered headlines.
package news

// Article is a single headline. Absent fields are nil.
type Article struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	ImageURL    *string `json:"image_url"`
	PublishedAt *string `json:"published_at"`
	URL         *string `json:"url"`
}

// Source selects the provider's feed.
type Source struct {
	ID   string
	Name string
}

// Payload is the raw top-headlines envelope as returned by the provider.
type Payload struct {
	Status       string       `json:"status"`
	TotalResults int          `json:"totalResults"`
	Articles     []RawArticle `json:"articles"`

	// set by the provider only when Status is "error"
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// RawArticle is a single article of the raw payload.
type RawArticle struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Content     *string `json:"content"`
	URLToImage  *string `json:"urlToImage"`
	PublishedAt *string `json:"publishedAt"`
	URL         *string `json:"url"`
}

// Value returns the string behind p or an empty string if p is nil.
func Value(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
