// Package bot contains the telegram presentation of headlines.
package bot

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/botx/botmw"
	cache "github.com/go-pkgz/expirable-cache/v2"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// telegram rejects longer messages
const maxMessageLen = 4096

const maxDetailBody = 3000

// Ctrl provides routes and controllers for bot updates.
type Ctrl struct {
	Logger         *slog.Logger
	API            botx.API
	Repository     headlines.Repository
	Source         news.Source
	APIKey         string
	Reader         *reader.Service // optional
	AdminIDs       []string
	HandlerTimeout time.Duration
	ListTTL        time.Duration

	lists cache.Cache[string, []news.Article]
}

// Routes returns a multiplexer for bot controllers.
func (c *Ctrl) Routes() *botx.Router {
	c.lists = cache.NewCache[string, []news.Article]().WithMaxKeys(1000).WithLRU()
	if c.ListTTL > 0 {
		c.lists = c.lists.WithTTL(c.ListTTL)
	}

	rtr := botx.NewRouter()

	rtr.Use(
		botmw.RequestID(),
		botmw.AppendRequestIDOnError(),
		botmw.Recover(c.Logger),
		botmw.Logger(c.Logger),
		botmw.Timeout(c.HandlerTimeout),
	)

	rtr.NotFound(c.help)
	rtr.Add("/start", c.help)
	rtr.Add("/help", c.help)
	rtr.Add("/headlines", c.headlines)
	rtr.Add("/read", c.read)

	rtr.Group(func(rtr *botx.Router) {
		rtr.Use(c.ensureAdmin)
		rtr.Add("/cache", c.cacheStats)
	})

	return rtr
}

func (c *Ctrl) help(_ context.Context, req botx.Request) ([]botx.Response, error) {
	return []botx.Response{{
		ChatID: req.Chat.ID,
		Text: fmt.Sprintf("I show the top headlines of *%s*.\n\n"+
			"/headlines - show the latest headlines\n"+
			"/read N - open the N-th article of the last list", escape(c.Source.Name)),
	}}, nil
}

func (c *Ctrl) ensureAdmin(h botx.Handler) botx.Handler {
	return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
		if !lo.Contains(c.AdminIDs, req.Chat.ID) {
			return c.help(ctx, req)
		}
		return h(ctx, req)
	}
}

// NotifyAdmins sends a message to all admins.
func (c *Ctrl) NotifyAdmins(ctx context.Context, msg string) error {
	for _, adminID := range c.AdminIDs {
		if err := c.API.SendMessage(ctx, botx.Response{ChatID: adminID, Text: escape(msg)}); err != nil {
			return fmt.Errorf("send message to admin %s: %w", adminID, err)
		}
	}
	return nil
}

// responses splits the text into messages that fit telegram limits,
// breaking between paragraphs where possible.
func responses(chatID, text string) []botx.Response {
	var res []botx.Response
	for len(text) > maxMessageLen {
		cut := strings.LastIndex(text[:maxMessageLen], "\n\n")
		if cut <= 0 {
			cut = maxMessageLen
			// don't split a multibyte rune
			for cut > 0 && text[cut]&0xC0 == 0x80 {
				cut--
			}
		}
		res = append(res, botx.Response{ChatID: chatID, Text: strings.TrimSpace(text[:cut])})
		text = strings.TrimSpace(text[cut:])
	}
	return append(res, botx.Response{ChatID: chatID, Text: text})
}
