package botx

import (
	"context"
	"strings"
)

// Handler handles requests.
type Handler func(ctx context.Context, req Request) ([]Response, error)

// Middleware wraps a handler.
type Middleware func(Handler) Handler

// Request is an incoming chat message.
type Request struct {
	MessageID string
	Chat      Chat
	Text      string
}

// Command returns the command of the message without the bot mention,
// e.g. "/read" for "/read@headlines_bot 2".
func (r Request) Command() string {
	fields := strings.Fields(r.Text)
	if len(fields) == 0 {
		return ""
	}
	cmd, _, _ := strings.Cut(fields[0], "@")
	return cmd
}

// Args returns the words of the message following the command.
func (r Request) Args() []string {
	fields := strings.Fields(r.Text)
	if len(fields) < 2 {
		return nil
	}
	return fields[1:]
}

// Response is an outgoing chat message, text is in markdown.
type Response struct {
	ReplyToMessageID string
	ChatID           string
	Text             string
}

// Chat contains chat information.
type Chat struct {
	ID       string
	Username string
}

// NotFound is a default handler for unknown commands.
func NotFound(_ context.Context, req Request) ([]Response, error) {
	return []Response{{
		ChatID: req.Chat.ID,
		Text:   "command not found",
	}}, nil
}
