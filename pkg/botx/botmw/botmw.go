// Package botmw provides middlewares for bot handler.
package botmw

import (
	"context"
	"fmt"
	"time"

	"github.com/Semior001/headlines/pkg/botx"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// Logger is a middleware that logs all requests.
// The message text is logged only at debug level.
func Logger(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			debug := lg.Enabled(ctx, slog.LevelDebug)

			args := []any{
				slog.String("chat_id", req.Chat.ID),
				slog.String("chat_username", req.Chat.Username),
				slog.String("command", req.Command()),
			}
			if debug {
				args = append(args, slog.String("text", req.Text))
			}

			lg.InfoCtx(ctx, "request received", args...)

			start := time.Now()
			res, err := next(ctx, req)

			if debug {
				lg.DebugCtx(ctx, "request processed",
					slog.Any("responses", res),
					slog.Duration("elapsed", time.Since(start)),
					slog.Any("err", err),
				)
				return res, err
			}

			lg.InfoCtx(ctx, "request processed",
				slog.Any("responses", lo.Map(res, func(r botx.Response, _ int) string { return r.ChatID })),
				slog.Duration("elapsed", time.Since(start)),
				slog.Any("err", err),
			)

			return res, err
		}
	}
}

// Recover is a middleware that recovers from panics and turns them into errors.
func Recover(lg *slog.Logger) botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resps []botx.Response, err error) {
			defer func() {
				if r := recover(); r != nil {
					lg.ErrorCtx(ctx, "panic recovered", slog.Any("panic", r))
					resps, err = nil, fmt.Errorf("panic: %v", r)
				}
			}()

			return next(ctx, req)
		}
	}
}
