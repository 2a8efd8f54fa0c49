// Package headlines turns a single asynchronous headline fetch into an
// observable Loading -> Success | Error state sequence.
package headlines

import (
	"context"
	"errors"
	"sync"

	"github.com/Semior001/headlines/app/news"
	"golang.org/x/exp/slog"
)

// ErrAlreadyStarted is returned when the controller is started twice.
var ErrAlreadyStarted = errors.New("controller already started")

// FallbackMessage is published when the failure carries no description.
const FallbackMessage = "failed to load headlines"

// a single activation publishes at most Loading and a terminal state
const maxStates = 2

//go:generate moq -out mock_repository.go . Repository

// Repository provides ordered headlines.
type Repository interface {
	GetHeadlines(ctx context.Context, sourceID, apiKey string) ([]news.Article, error)
}

// Controller fetches the headlines of a source exactly once and
// broadcasts the resulting states to subscribers.
type Controller struct {
	log    *slog.Logger
	repo   Repository
	src    news.Source
	apiKey string

	mu      sync.Mutex
	state   State
	subs    []chan State
	started bool
	closed  bool
	done    chan struct{}
}

// NewController makes a new Controller in the Loading state.
func NewController(lg *slog.Logger, repo Repository, src news.Source, apiKey string) *Controller {
	return &Controller{
		log:    lg,
		repo:   repo,
		src:    src,
		apiKey: apiKey,
		state:  Loading{},
		done:   make(chan struct{}),
	}
}

// Start activates the controller: it fetches the headlines in background
// and returns immediately. If ctx is canceled before the fetch is done,
// the result is discarded and no state is published.
func (c *Controller) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.started {
		return ErrAlreadyStarted
	}
	c.started = true

	go c.fetch(ctx)
	return nil
}

func (c *Controller) fetch(ctx context.Context) {
	c.log.DebugCtx(ctx, "fetching headlines", slog.String("source", c.src.ID))

	articles, err := c.repo.GetHeadlines(ctx, c.src.ID, c.apiKey)

	c.mu.Lock()
	defer c.mu.Unlock()

	if ctx.Err() != nil {
		c.log.DebugCtx(ctx, "controller torn down, discarding result", slog.Any("err", err))
		c.close()
		return
	}

	if err != nil {
		c.log.WarnCtx(ctx, "failed to fetch headlines",
			slog.String("source", c.src.ID), slog.Any("err", err))
		c.publish(Error{Message: message(err)})
		c.close()
		return
	}

	c.log.DebugCtx(ctx, "headlines fetched",
		slog.String("source", c.src.ID), slog.Int("count", len(articles)))
	c.publish(Success{Articles: articles})
	c.close()
}

func message(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return FallbackMessage
}

// publish must be called with mu held.
func (c *Controller) publish(s State) {
	c.state = s
	for _, ch := range c.subs {
		ch <- s
	}
}

// close must be called with mu held.
func (c *Controller) close() {
	c.closed = true
	for _, ch := range c.subs {
		close(ch)
	}
	c.subs = nil
	close(c.done)
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscribe returns a channel that receives the current state right away
// and every subsequent state in order. The channel is closed once the
// controller reaches a terminal state or is torn down.
func (c *Controller) Subscribe() <-chan State {
	c.mu.Lock()
	defer c.mu.Unlock()

	ch := make(chan State, maxStates)
	ch <- c.state

	if c.closed {
		close(ch)
		return ch
	}

	c.subs = append(c.subs, ch)
	return ch
}

// Done is closed when the fetch cycle is over.
func (c *Controller) Done() <-chan struct{} { return c.done }
