package bot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/slog"
)

type sentMessages struct {
	mu   sync.Mutex
	msgs []botx.Response
}

func (s *sentMessages) api() *botx.APIMock {
	return &botx.APIMock{
		SendMessageFunc: func(_ context.Context, resp botx.Response) error {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.msgs = append(s.msgs, resp)
			return nil
		},
	}
}

func newCtrl(repo headlines.Repository, api botx.API) *Ctrl {
	return &Ctrl{
		Logger:         slog.New(logx.NoOp()),
		API:            api,
		Repository:     repo,
		Source:         news.Source{ID: "bbc-news", Name: "BBC News"},
		APIKey:         "key",
		AdminIDs:       []string{"1"},
		HandlerTimeout: 5 * time.Second,
		ListTTL:        time.Hour,
	}
}

func request(chatID, text string) botx.Request {
	return botx.Request{Chat: botx.Chat{ID: chatID, Username: "user"}, Text: text}
}

var sampleArticles = []news.Article{
	{Title: lo.ToPtr("Newest"), PublishedAt: lo.ToPtr("2024-01-20T10:00:00Z"), URL: lo.ToPtr("https://example.com/1")},
	{Title: lo.ToPtr("Older"), PublishedAt: lo.ToPtr("2024-01-10T10:00:00Z"), Content: lo.ToPtr("Body… [+10 chars]")},
}

func okRepo() *headlines.RepositoryMock {
	return &headlines.RepositoryMock{
		GetHeadlinesFunc: func(context.Context, string, string) ([]news.Article, error) {
			return sampleArticles, nil
		},
	}
}

func TestCtrl_Headlines(t *testing.T) {
	sent := &sentMessages{}
	repo := okRepo()
	rtr := newCtrl(repo, sent.api()).Routes()

	resps, err := rtr.Handle(context.Background(), request("42", "/headlines"))
	require.NoError(t, err)

	require.Len(t, sent.msgs, 1)
	assert.Equal(t, botx.Response{ChatID: "42", Text: "Loading BBC News headlines..."}, sent.msgs[0])

	require.Len(t, resps, 1)
	assert.Equal(t, "42", resps[0].ChatID)
	assert.Equal(t, "*BBC News*\n"+
		"\n1. *Newest* _20 Jan 2024_\n"+
		"\n2. *Older* _10 Jan 2024_\n"+
		"\nSend /read N to open an article.", resps[0].Text)

	calls := repo.GetHeadlinesCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "bbc-news", calls[0].SourceID)
	assert.Equal(t, "key", calls[0].ApiKey)
}

func TestCtrl_Headlines_Error(t *testing.T) {
	sent := &sentMessages{}
	rtr := newCtrl(&headlines.RepositoryMock{
		GetHeadlinesFunc: func(context.Context, string, string) ([]news.Article, error) {
			return nil, errors.New("Network error")
		},
	}, sent.api()).Routes()

	resps, err := rtr.Handle(context.Background(), request("42", "/headlines"))
	require.NoError(t, err)
	assert.Equal(t, []botx.Response{{ChatID: "42", Text: "Failed to load headlines: Network error"}}, resps)

	resps, err = rtr.Handle(context.Background(), request("42", "/read 1"))
	require.NoError(t, err)
	assert.Equal(t, "Send /headlines first.", resps[0].Text, "failed fetch must not leave a list behind")
}

func TestCtrl_Headlines_Timeout(t *testing.T) {
	sent := &sentMessages{}
	ctrl := newCtrl(&headlines.RepositoryMock{
		GetHeadlinesFunc: func(ctx context.Context, _, _ string) ([]news.Article, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		},
	}, sent.api())
	ctrl.HandlerTimeout = 50 * time.Millisecond

	resps, err := ctrl.Routes().Handle(context.Background(), request("42", "/headlines"))
	require.Error(t, err)
	require.Len(t, resps, 1)
	assert.Contains(t, resps[0].Text, "Something went wrong")
}

func TestCtrl_Read(t *testing.T) {
	sent := &sentMessages{}
	rtr := newCtrl(okRepo(), sent.api()).Routes()

	handle := func(text string) string {
		resps, err := rtr.Handle(context.Background(), request("42", text))
		require.NoError(t, err)
		require.NotEmpty(t, resps)
		return resps[0].Text
	}

	assert.Equal(t, "Send /headlines first.", handle("/read 1"))

	handle("/headlines")

	assert.Equal(t, "*Older*\n_10 Jan 2024_\n\nBody", handle("/read 2"))
	assert.Equal(t, "*Newest*\n_20 Jan 2024_\n\n[source](https://example.com/1)", handle("/read@headlines_bot 1"))
	assert.Equal(t, "There is no article 3, the last list has 2.", handle("/read 3"))
	assert.Equal(t, "N must be a number, e.g. /read 1", handle("/read one"))
	assert.Equal(t, "Usage: /read N, e.g. /read 1", handle("/read"))

	// lists are per chat
	resps, err := rtr.Handle(context.Background(), request("43", "/read 1"))
	require.NoError(t, err)
	assert.Equal(t, "Send /headlines first.", resps[0].Text)
}

func TestCtrl_Read_WithReader(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, err := w.Write([]byte(`<html><head><title>Newest</title></head><body><article><p>` +
			strings.Repeat("The full text of the newest article is available on the page. ", 60) +
			`</p></article></body></html>`))
		require.NoError(t, err)
	}))
	defer ts.Close()

	repo := &headlines.RepositoryMock{
		GetHeadlinesFunc: func(context.Context, string, string) ([]news.Article, error) {
			return []news.Article{{Title: lo.ToPtr("Newest"), URL: lo.ToPtr(ts.URL + "/news/1")}}, nil
		},
	}

	sent := &sentMessages{}
	ctrl := newCtrl(repo, sent.api())
	ctrl.Reader = reader.NewService(slog.New(logx.NoOp()), http.Client{}, nil)
	rtr := ctrl.Routes()

	_, err := rtr.Handle(context.Background(), request("42", "/headlines"))
	require.NoError(t, err)

	resps, err := rtr.Handle(context.Background(), request("42", "/read 1"))
	require.NoError(t, err)
	require.NotEmpty(t, resps)
	assert.Contains(t, resps[0].Text, "The full text of the newest article")
	assert.Contains(t, resps[0].Text, "…", "body is truncated to fit a message")
}

func TestCtrl_HelpAndAdmin(t *testing.T) {
	sent := &sentMessages{}
	rtr := newCtrl(okRepo(), sent.api()).Routes()

	resps, err := rtr.Handle(context.Background(), request("42", "hello"))
	require.NoError(t, err)
	assert.Contains(t, resps[0].Text, "/headlines - show the latest headlines")

	resps, err = rtr.Handle(context.Background(), request("42", "/cache"))
	require.NoError(t, err)
	assert.Contains(t, resps[0].Text, "/headlines - show the latest headlines", "non-admins get help")

	_, err = rtr.Handle(context.Background(), request("1", "/headlines"))
	require.NoError(t, err)

	resps, err = rtr.Handle(context.Background(), request("1", "/cache"))
	require.NoError(t, err)
	assert.Equal(t, "lists: hits: 0, misses: 0, added: 1, evicted: 0, size: 1\n", resps[0].Text)
}

func TestCtrl_NotifyAdmins(t *testing.T) {
	sent := &sentMessages{}
	ctrl := newCtrl(okRepo(), sent.api())
	ctrl.AdminIDs = []string{"1", "2"}

	require.NoError(t, ctrl.NotifyAdmins(context.Background(), "bot_started"))
	assert.Equal(t, []botx.Response{
		{ChatID: "1", Text: "bot\\_started"},
		{ChatID: "2", Text: "bot\\_started"},
	}, sent.msgs)
}

func TestResponses(t *testing.T) {
	assert.Equal(t, []botx.Response{{ChatID: "1", Text: "short"}}, responses("1", "short"))

	para := strings.Repeat("a", 3000)
	res := responses("1", para+"\n\n"+para)
	require.Len(t, res, 2)
	assert.Equal(t, para, res[0].Text)
	assert.Equal(t, para, res[1].Text)

	long := strings.Repeat("я", maxMessageLen)
	res = responses("1", long)
	require.Len(t, res, 2)
	assert.Equal(t, long, res[0].Text+res[1].Text)
	for _, r := range res {
		assert.LessOrEqual(t, len(r.Text), maxMessageLen)
	}
}
