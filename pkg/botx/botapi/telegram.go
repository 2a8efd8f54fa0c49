// Package botapi contains implementations of bot API interfaces.
package botapi

import (
	"context"
	"fmt"
	"strconv"

	"github.com/Semior001/headlines/pkg/botx"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"golang.org/x/exp/slog"
	"golang.org/x/time/rate"
)

// telegram allows bots about 30 messages per second overall
const messagesPerSecond = 30

// Telegram receives messages from and sends messages to telegram.
type Telegram struct {
	log     *slog.Logger
	api     *tgbotapi.BotAPI
	updates chan botx.Request
	limiter *rate.Limiter
}

// NewTelegram makes a new telegram API.
func NewTelegram(lg *slog.Logger, token string, bufferSize int) (*Telegram, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("make new api: %w", err)
	}

	stdlibLogger := slog.NewLogLogger(lg.Handler(), slog.LevelWarn)
	stdlibLogger.SetPrefix("telegram-bot-api: ")

	if err = tgbotapi.SetLogger(stdlibLogger); err != nil {
		return nil, fmt.Errorf("set logger: %w", err)
	}

	lg.Info("authorized in telegram", slog.String("bot", api.Self.UserName))

	return &Telegram{
		log:     lg,
		api:     api,
		updates: make(chan botx.Request, bufferSize),
		limiter: rate.NewLimiter(messagesPerSecond, 1),
	}, nil
}

// Run listens for telegram updates until the context is done.
// Updates channel is closed on return.
func (b *Telegram) Run(ctx context.Context) {
	defer close(b.updates)

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 60
	updates := b.api.GetUpdatesChan(u)
	defer b.api.StopReceivingUpdates()

	for {
		var update tgbotapi.Update
		var ok bool

		select {
		case <-ctx.Done():
			return
		case update, ok = <-updates:
			if !ok {
				return
			}
		}

		msg := update.Message
		if msg == nil || msg.Chat == nil || msg.Text == "" {
			continue
		}

		req := botx.Request{
			MessageID: strconv.Itoa(msg.MessageID),
			Chat: botx.Chat{
				ID:       strconv.FormatInt(msg.Chat.ID, 10),
				Username: msg.Chat.UserName,
			},
			Text: msg.Text,
		}

		select {
		case <-ctx.Done():
			return
		case b.updates <- req:
		}
	}
}

// Updates returns updates channel.
func (b *Telegram) Updates() <-chan botx.Request { return b.updates }

// SendMessage sends a markdown message to telegram chat.
func (b *Telegram) SendMessage(ctx context.Context, resp botx.Response) error {
	if err := b.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("wait for send limit: %w", err)
	}

	chatID, err := strconv.ParseInt(resp.ChatID, 10, 64)
	if err != nil {
		return fmt.Errorf("parse chat id: %w", err)
	}

	msg := tgbotapi.NewMessage(chatID, resp.Text)
	msg.ParseMode = tgbotapi.ModeMarkdown
	msg.DisableWebPagePreview = true
	if resp.ReplyToMessageID != "" {
		if msg.ReplyToMessageID, err = strconv.Atoi(resp.ReplyToMessageID); err != nil {
			return fmt.Errorf("parse reply to message id: %w", err)
		}
	}

	if _, err = b.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}

	return nil
}
