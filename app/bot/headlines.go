package bot

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/render"
	"github.com/Semior001/headlines/pkg/botx"
	"golang.org/x/exp/slog"
)

func escape(s string) string { return render.EscapeMarkdown(s) }

// headlines runs a fresh controller for the request and streams its states:
// Loading is sent right away, the terminal state is the response.
func (c *Ctrl) headlines(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	ctrl := headlines.NewController(c.Logger, c.Repository, c.Source, c.APIKey)
	states := ctrl.Subscribe()

	if err := ctrl.Start(ctx); err != nil {
		return nil, fmt.Errorf("start headlines controller: %w", err)
	}

	rnd := render.Markdown(0)
	var last headlines.State

	for s := range states {
		last = s

		sb := &strings.Builder{}
		if err := rnd.State(sb, c.Source, s); err != nil {
			return nil, fmt.Errorf("render state: %w", err)
		}

		switch s := s.(type) {
		case headlines.Loading:
			if err := c.API.SendMessage(ctx, botx.Response{ChatID: req.Chat.ID, Text: sb.String()}); err != nil {
				c.Logger.WarnCtx(ctx, "failed to send loading message", slog.Any("err", err))
			}
		case headlines.Success:
			c.lists.Set(req.Chat.ID, s.Articles, 0)
			text := strings.TrimSpace(sb.String())
			if len(s.Articles) > 0 {
				text += "\n\nSend /read N to open an article."
			}
			return responses(req.Chat.ID, text), nil
		case headlines.Error:
			return responses(req.Chat.ID, sb.String()), nil
		}
	}

	// controller was torn down before the fetch was done
	return nil, fmt.Errorf("headlines not loaded, last state %T: %w", last, ctx.Err())
}

func (c *Ctrl) read(ctx context.Context, req botx.Request) ([]botx.Response, error) {
	args := req.Args()
	if len(args) != 1 {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Usage: /read N, e.g. /read 1"}}, nil
	}

	n, err := strconv.Atoi(args[0])
	if err != nil {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "N must be a number, e.g. /read 1"}}, nil
	}

	list, ok := c.lists.Get(req.Chat.ID)
	if !ok {
		return []botx.Response{{ChatID: req.Chat.ID, Text: "Send /headlines first."}}, nil
	}

	if n < 1 || n > len(list) {
		return []botx.Response{{
			ChatID: req.Chat.ID,
			Text:   fmt.Sprintf("There is no article %d, the last list has %d.", n, len(list)),
		}}, nil
	}

	d := c.detail(ctx, list[n-1])

	sb := &strings.Builder{}
	if err = render.Markdown(maxDetailBody).Detail(sb, d); err != nil {
		return nil, fmt.Errorf("render detail: %w", err)
	}

	return responses(req.Chat.ID, sb.String()), nil
}

// detail enriches the article with the page text when possible,
// falling back to what the feed provided.
func (c *Ctrl) detail(ctx context.Context, a news.Article) reader.Detail {
	if c.Reader == nil {
		return reader.Detail{Article: a}
	}

	d, err := c.Reader.Read(ctx, a)
	switch {
	case errors.Is(err, reader.ErrNoURL):
		return reader.Detail{Article: a}
	case err != nil:
		c.Logger.WarnCtx(ctx, "failed to read article, showing feed content", slog.Any("err", err))
		return reader.Detail{Article: a}
	}

	return d
}
