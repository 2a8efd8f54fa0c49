// Package cmd contains commands for the application.
package cmd

import (
	"net/http"
	"time"

	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"golang.org/x/exp/slog"
)

// NewsOpts are options shared by all commands.
type NewsOpts struct {
	Source struct {
		ID   string `long:"id" env:"ID" default:"bbc-news" description:"source id of the feed"`
		Name string `long:"name" env:"NAME" default:"BBC News" description:"display name of the source"`
	} `group:"source" namespace:"source" env-namespace:"SOURCE"`

	NewsAPI struct {
		APIKey  string        `long:"api-key" env:"API_KEY" description:"newsapi.org key"`
		BaseURL string        `long:"base-url" env:"BASE_URL" default:"https://newsapi.org" description:"base url of the feed"`
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for feed requests"`
	} `group:"newsapi" namespace:"newsapi" env-namespace:"NEWS"`

	Reader struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"30s" description:"timeout for article page requests"`

		OpenAI struct {
			Token     string        `long:"token" env:"TOKEN" description:"OpenAI token, summaries are off when empty"`
			MaxTokens int           `long:"max-tokens" env:"MAX_TOKENS" default:"1000" description:"max tokens for OpenAI"`
			Timeout   time.Duration `long:"timeout" env:"TIMEOUT" default:"5m" description:"timeout for OpenAI calls"`
		} `group:"openai" namespace:"openai" env-namespace:"OPENAI"`
	} `group:"reader" namespace:"reader" env-namespace:"READER"`
}

func (o NewsOpts) source() news.Source {
	return news.Source{ID: o.Source.ID, Name: o.Source.Name}
}

func (o NewsOpts) repository(lg *slog.Logger) *news.Repository {
	return news.NewRepository(news.NewNewsAPI(
		lg.With(slog.String("prefix", "newsapi")),
		o.NewsAPI.BaseURL,
		o.NewsAPI.Timeout,
	))
}

func (o NewsOpts) reader(lg *slog.Logger) *reader.Service {
	var summarizer *reader.ChatGPT
	if o.Reader.OpenAI.Token != "" {
		summarizer = reader.NewChatGPT(
			lg.With(slog.String("prefix", "chatgpt")),
			&http.Client{Timeout: o.Reader.OpenAI.Timeout},
			o.Reader.OpenAI.Token,
			o.Reader.OpenAI.MaxTokens,
		)
	}

	return reader.NewService(
		lg.With(slog.String("prefix", "reader")),
		http.Client{Timeout: o.Reader.Timeout},
		summarizer,
	)
}
