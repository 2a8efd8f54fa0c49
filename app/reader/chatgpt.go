package reader

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"text/template"

	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/sashabaranov/go-openai"
	"golang.org/x/exp/slog"
)

//go:embed data/prompt.tmpl
var prompt string

var promptTmpl = template.Must(template.New("prompt").Parse(prompt))

//go:generate moq -out mock_openai_client.go . OpenAIClient

// OpenAIClient is interface for OpenAI client with the possibility to mock it
type OpenAIClient interface {
	CreateChatCompletion(context.Context, openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// ChatGPT summarizes article text into bullet points.
type ChatGPT struct {
	log               *slog.Logger
	cl                OpenAIClient
	maxResponseTokens int
	cache             cache.Cache[string, string]
}

// NewChatGPT creates new ChatGPT client.
func NewChatGPT(lg *slog.Logger, cl *http.Client, token string, maxResponseTokens int) *ChatGPT {
	config := openai.DefaultConfig(token)
	config.HTTPClient = cl

	return newChatGPT(lg, &loggingClient{log: lg, cl: openai.NewClientWithConfig(config)}, maxResponseTokens)
}

func newChatGPT(lg *slog.Logger, cl OpenAIClient, maxResponseTokens int) *ChatGPT {
	return &ChatGPT{
		log:               lg,
		cl:                cl,
		maxResponseTokens: maxResponseTokens,
		cache:             cache.NewCache[string, string]().WithLRU().WithMaxKeys(100),
	}
}

// maxRequestTokens is a maximum number of tokens that can be sent to OpenAI.
const maxRequestTokens = 4097

// ErrTooManyTokens is returned when article is too long.
var ErrTooManyTokens = errors.New("too many tokens")

type promptData struct {
	Title string
	Text  string
}

// BulletPoints summarizes the page. Results are cached by url.
func (s *ChatGPT) BulletPoints(ctx context.Context, u string, page Page) (string, error) {
	if resp, ok := s.cache.Get(u); ok {
		return resp, nil
	}

	buf := &strings.Builder{}
	if err := promptTmpl.Execute(buf, promptData{Title: page.Title, Text: page.Text}); err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}

	if totalTokens := strings.Count(buf.String(), " ") + 1; totalTokens > maxRequestTokens {
		return "", ErrTooManyTokens
	}

	resp, err := s.cl.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     openai.GPT3Dot5Turbo,
		MaxTokens: s.maxResponseTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: buf.String()},
		},
	})
	if err != nil {
		return "", fmt.Errorf("create chat completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", errors.New("no choices in response")
	}

	result := strings.TrimSpace(resp.Choices[0].Message.Content)
	s.cache.Set(u, result, 0)
	return result, nil
}

// CacheStat returns summary cache stats.
func (s *ChatGPT) CacheStat() cache.Stats { return s.cache.Stat() }

type loggingClient struct {
	log *slog.Logger
	cl  OpenAIClient
}

func (l *loggingClient) CreateChatCompletion(
	ctx context.Context,
	req openai.ChatCompletionRequest,
) (openai.ChatCompletionResponse, error) {
	l.log.DebugCtx(ctx, "sending request to chatGPT")
	resp, err := l.cl.CreateChatCompletion(ctx, req)
	l.log.DebugCtx(ctx, "response received from chatGPT", slog.Any("err", err))
	return resp, err
}
