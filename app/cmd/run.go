package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/Semior001/headlines/app/headlines"
	"github.com/Semior001/headlines/app/news"
	"github.com/Semior001/headlines/app/reader"
	"github.com/Semior001/headlines/app/render"
	"golang.org/x/exp/slog"
)

// Run prints the headlines of the source to the terminal.
type Run struct {
	NewsOpts
	Read int `long:"read" description:"print the detail of the N-th article after the list"`
}

// Execute runs the command.
func (r Run) Execute(_ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return r.run(ctx, slog.Default(), os.Stdout)
}

func (r Run) run(ctx context.Context, lg *slog.Logger, w io.Writer) error {
	src := r.source()
	rnd := render.Plain()

	ctrl := headlines.NewController(
		lg.With(slog.String("prefix", "headlines")),
		r.repository(lg),
		src,
		r.NewsAPI.APIKey,
	)
	states := ctrl.Subscribe()

	if err := ctrl.Start(ctx); err != nil {
		return fmt.Errorf("start headlines controller: %w", err)
	}

	var last headlines.State
	for s := range states {
		last = s
		if err := rnd.State(w, src, s); err != nil {
			return fmt.Errorf("render state: %w", err)
		}
	}

	switch s := last.(type) {
	case headlines.Success:
		if r.Read == 0 {
			return nil
		}
		return r.printDetail(ctx, lg, w, s.Articles)
	case headlines.Error:
		return fmt.Errorf("load headlines: %s", s.Message)
	default:
		return fmt.Errorf("headlines not loaded, last state %T: %w", last, ctx.Err())
	}
}

func (r Run) printDetail(ctx context.Context, lg *slog.Logger, w io.Writer, articles []news.Article) error {
	if r.Read < 1 || r.Read > len(articles) {
		return fmt.Errorf("there is no article %d, the list has %d", r.Read, len(articles))
	}

	a := articles[r.Read-1]

	d, err := r.reader(lg).Read(ctx, a)
	switch {
	case errors.Is(err, reader.ErrNoURL):
		d = reader.Detail{Article: a}
	case err != nil:
		lg.WarnCtx(ctx, "failed to read article, showing feed content", slog.Any("err", err))
		d = reader.Detail{Article: a}
	}

	if _, err = io.WriteString(w, "\n"); err != nil {
		return fmt.Errorf("write separator: %w", err)
	}

	if err = render.Plain().Detail(w, d); err != nil {
		return fmt.Errorf("render detail: %w", err)
	}

	return nil
}
