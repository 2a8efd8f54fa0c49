package botmw

import (
	"context"
	"fmt"

	"github.com/Semior001/headlines/pkg/botx"
	"github.com/Semior001/headlines/pkg/logx"
	"github.com/google/uuid"
)

// RequestID is a middleware that adds request id to context.
func RequestID() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) ([]botx.Response, error) {
			return next(logx.ContextWithRequestID(ctx, uuid.NewString()), req)
		}
	}
}

// AppendRequestIDOnError appends the request id to responses of a failed
// request, and tells the requester that something went wrong if nobody did.
func AppendRequestIDOnError() botx.Middleware {
	return func(next botx.Handler) botx.Handler {
		return func(ctx context.Context, req botx.Request) (resps []botx.Response, err error) {
			resps, err = next(ctx, req)
			if err == nil {
				return resps, nil
			}

			reqID, _ := logx.RequestIDFromContext(ctx)

			hasRequester := false
			for i := range resps {
				resps[i].Text += fmt.Sprintf("\n\nRequest ID: `%s`", reqID)
				if resps[i].ChatID == req.Chat.ID {
					hasRequester = true
				}
			}

			if !hasRequester {
				resps = append(resps, botx.Response{
					ChatID: req.Chat.ID,
					Text:   fmt.Sprintf("Something went wrong, please try again later.\n\nRequest ID: `%s`", reqID),
				})
			}

			return resps, err
		}
	}
}
