package news

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Semior001/headlines/pkg/logx"
	"github.com/go-pkgz/requester"
	"github.com/go-pkgz/requester/middleware"
	"golang.org/x/exp/slog"
)

//go:generate moq -out mock_feed_client.go . FeedClient

// FeedClient fetches the top headlines of a single source.
type FeedClient interface {
	TopHeadlines(ctx context.Context, sourceID, apiKey string) (Payload, error)
}

// DefaultBaseURL is the base URL of the NewsAPI provider.
const DefaultBaseURL = "https://newsapi.org"

const apiKeyHeader = "X-Api-Key"

// StatusError is returned when the provider responds with a non-2xx status.
type StatusError struct {
	StatusCode int
	Code       string
	Message    string
}

// Error implements error.
func (e *StatusError) Error() string {
	sb := &strings.Builder{}
	_, _ = fmt.Fprintf(sb, "bad status code: %d", e.StatusCode)
	if e.Code != "" {
		_, _ = fmt.Fprintf(sb, ": %s", e.Code)
	}
	if e.Message != "" {
		_, _ = fmt.Fprintf(sb, ": %s", e.Message)
	}
	return sb.String()
}

// NewsAPI is a FeedClient over the newsapi.org top-headlines endpoint.
type NewsAPI struct {
	log     *slog.Logger
	cl      *requester.Requester
	baseURL string
}

// NewNewsAPI makes a new NewsAPI client, empty baseURL means DefaultBaseURL.
func NewNewsAPI(lg *slog.Logger, baseURL string, timeout time.Duration) *NewsAPI {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}

	return &NewsAPI{
		log:     lg,
		baseURL: strings.TrimSuffix(baseURL, "/"),
		cl: requester.New(
			http.Client{Timeout: timeout},
			middleware.Header("User-Agent", "headlines"),
			middleware.JSON,
			logx.LoggingRoundTripper(lg, logx.RoundTripperOpts{
				Level:         slog.LevelDebug,
				SecretHeaders: []string{apiKeyHeader},
			}),
		),
	}
}

// TopHeadlines requests the top headlines of the given source.
// A payload with the "error" status and a 2xx response code is returned as is.
func (c *NewsAPI) TopHeadlines(ctx context.Context, sourceID, apiKey string) (Payload, error) {
	q := url.Values{}
	q.Set("sources", sourceID)
	u := c.baseURL + "/v2/top-headlines?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Payload{}, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set(apiKeyHeader, apiKey)

	resp, err := c.cl.Do(req)
	if err != nil {
		return Payload{}, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.WarnCtx(ctx, "failed to close response body", slog.Any("err", err))
		}
	}()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return Payload{}, statusError(resp)
	}

	var p Payload
	if err = json.NewDecoder(resp.Body).Decode(&p); err != nil {
		return Payload{}, fmt.Errorf("decode payload: %w", err)
	}

	if p.Status != "ok" {
		c.log.WarnCtx(ctx, "provider reported non-ok status",
			slog.String("status", p.Status),
			slog.String("code", p.Code),
			slog.String("message", p.Message),
		)
	}

	return p, nil
}

func statusError(resp *http.Response) *StatusError {
	res := &StatusError{StatusCode: resp.StatusCode}

	var body Payload
	if err := json.NewDecoder(io.LimitReader(resp.Body, 64*1024)).Decode(&body); err == nil {
		res.Code, res.Message = body.Code, body.Message
	}

	return res
}
