package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Semior001/headlines/app/bot"
	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/botx/botapi"
	"golang.org/x/exp/slog"
	"golang.org/x/sync/errgroup"
)

// Bot is a command to run the telegram bot.
type Bot struct {
	NewsOpts

	Bot struct {
		Timeout time.Duration `long:"timeout" env:"TIMEOUT" default:"2m" description:"timeout for handling a message"`
		Workers int           `long:"workers" env:"WORKERS" default:"10" description:"amount of workers handling messages"`
		ListTTL time.Duration `long:"list-ttl" env:"LIST_TTL" default:"1h" description:"how long the last list of a chat is kept"`

		Telegram struct {
			Token string `long:"token" env:"TOKEN" description:"telegram token"`
		} `group:"telegram" namespace:"telegram" env-namespace:"TELEGRAM"`

		AdminIDs []string `long:"admin-ids" env:"ADMIN_IDS" env-delim:"," description:"admin IDs"`
	} `group:"bot" namespace:"bot" env-namespace:"BOT"`
}

// Execute runs the command.
func (b Bot) Execute(_ []string) error {
	lg := slog.Default()

	api, err := botapi.NewTelegram(
		lg.With(slog.String("prefix", "telegram")),
		b.Bot.Telegram.Token,
		100,
	)
	if err != nil {
		return fmt.Errorf("make telegram controller: %w", err)
	}

	ctrl := &bot.Ctrl{
		Logger:         lg.With(slog.String("prefix", "bot")),
		API:            api,
		Repository:     b.repository(lg),
		Source:         b.source(),
		APIKey:         b.NewsAPI.APIKey,
		Reader:         b.reader(lg),
		AdminIDs:       b.Bot.AdminIDs,
		HandlerTimeout: b.Bot.Timeout,
		ListTTL:        b.Bot.ListTTL,
	}

	bt := botx.NewBot(
		ctrl.Routes().Handle,
		api,
		botx.WithLogger(lg.With(slog.String("prefix", "botx"))),
		botx.WithWorkers(b.Bot.Workers),
	)

	if err = ctrl.NotifyAdmins(context.Background(), "bot started"); err != nil {
		return fmt.Errorf("notify admins about started bot: %w", err)
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	ewg, ctx := errgroup.WithContext(ctx)
	ewg.Go(func() error {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
		defer signal.Stop(sig)

		select {
		case s := <-sig:
			lg.Warn("caught signal, stopping", slog.String("signal", s.String()))
			stop()
			return ctx.Err()
		case <-ctx.Done():
			return ctx.Err()
		}
	})
	ewg.Go(func() error {
		lg.Info("starting telegram api")
		api.Run(ctx)
		lg.Warn("telegram api stopped listening for updates")
		stop()
		return nil
	})
	ewg.Go(func() error {
		lg.Info("starting bot", slog.String("source", b.Source.ID))
		bt.Run(ctx)
		lg.Warn("bot stopped")
		return nil
	})

	// the api outlives the context, so admins can be notified after the stop
	if err = ewg.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		msg := fmt.Sprintf("bot stopped with error: %v", err)

		if sendErr := ctrl.NotifyAdmins(context.Background(), msg); sendErr != nil {
			return fmt.Errorf("notify admins about stopped bot (for reason: %v): %w", err, sendErr)
		}

		return err
	}

	if err = ctrl.NotifyAdmins(context.Background(), "bot stopped"); err != nil {
		return fmt.Errorf("notify admins about stopped bot: %w", err)
	}

	return nil
}
