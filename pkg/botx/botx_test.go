package botx

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequest_CommandArgs(t *testing.T) {
	tbl := []struct {
		text string
		cmd  string
		args []string
	}{
		{text: "/read 2", cmd: "/read", args: []string{"2"}},
		{text: "/read@headlines_bot  2  3", cmd: "/read", args: []string{"2", "3"}},
		{text: "/headlines", cmd: "/headlines"},
		{text: "  ", cmd: ""},
		{text: "hello there", cmd: "hello", args: []string{"there"}},
	}

	for _, tt := range tbl {
		t.Run(tt.text, func(t *testing.T) {
			req := Request{Text: tt.text}
			assert.Equal(t, tt.cmd, req.Command())
			assert.Equal(t, tt.args, req.Args())
		})
	}
}

func respond(text string) Handler {
	return func(_ context.Context, req Request) ([]Response, error) {
		return []Response{{ChatID: req.Chat.ID, Text: text}}, nil
	}
}

func TestRouter_Handle(t *testing.T) {
	var trace []string
	mw := func(name string) Middleware {
		return func(next Handler) Handler {
			return func(ctx context.Context, req Request) ([]Response, error) {
				trace = append(trace, name)
				return next(ctx, req)
			}
		}
	}

	rtr := NewRouter()
	rtr.Use(mw("outer"))
	rtr.Add("/read", respond("read"))
	rtr.Group(func(rtr *Router) {
		rtr.Use(mw("admin"))
		rtr.Add("/cache", respond("cache"))
	})

	handle := func(text string) []Response {
		resps, err := rtr.Handle(context.Background(), Request{Chat: Chat{ID: "1"}, Text: text})
		require.NoError(t, err)
		return resps
	}

	assert.Equal(t, []Response{{ChatID: "1", Text: "read"}}, handle("/read 1"))
	assert.Equal(t, []string{"outer"}, trace)

	trace = nil
	assert.Equal(t, []Response{{ChatID: "1", Text: "cache"}}, handle("/cache"))
	assert.Equal(t, []string{"outer", "admin"}, trace)

	assert.Equal(t, []Response{{ChatID: "1", Text: "command not found"}}, handle("/readme"))

	rtr.NotFound(respond("default"))
	assert.Equal(t, []Response{{ChatID: "1", Text: "default"}}, handle("just text"))

	assert.Nil(t, handle(""))
}

func TestBot_Run(t *testing.T) {
	updates := make(chan Request, 3)
	updates <- Request{Chat: Chat{ID: "1"}, Text: "/ok"}
	updates <- Request{Chat: Chat{ID: "2"}, Text: "/fail"}
	updates <- Request{Chat: Chat{ID: "3"}, Text: "/ok"}
	close(updates)

	mu := sync.Mutex{}
	var sent []string

	api := &APIMock{
		UpdatesFunc: func() <-chan Request { return updates },
		SendMessageFunc: func(_ context.Context, resp Response) error {
			mu.Lock()
			defer mu.Unlock()
			sent = append(sent, resp.ChatID+":"+resp.Text)
			return nil
		},
	}

	rtr := NewRouter()
	rtr.Add("/ok", respond("ok"))
	rtr.Add("/fail", func(context.Context, Request) ([]Response, error) { return nil, errors.New("failed") })

	NewBot(rtr.Handle, api, WithWorkers(2)).Run(context.Background())

	sort.Strings(sent)
	assert.Equal(t, []string{"1:ok", "3:ok"}, sent)
}
