package logx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-pkgz/requester/middleware"
	"github.com/samber/lo"
	"golang.org/x/exp/slog"
)

// RoundTripperOpts contains options for client logger.
type RoundTripperOpts struct {
	Level         slog.Level
	SecretHeaders []string
}

// LoggingRoundTripper logs every client request and the response to it.
// Values of SecretHeaders are replaced with "***".
func LoggingRoundTripper(lg *slog.Logger, opts RoundTripperOpts) middleware.RoundTripperHandler {
	secrets := lo.Map(opts.SecretHeaders, func(h string, _ int) string {
		return http.CanonicalHeaderKey(h)
	})

	return func(next http.RoundTripper) http.RoundTripper {
		return middleware.RoundTripperFunc(func(req *http.Request) (*http.Response, error) {
			if !lg.Enabled(req.Context(), opts.Level) {
				return next.RoundTrip(req)
			}

			le := logEntry{}
			le.Request.URL = req.URL.String()
			le.Request.Method = req.Method
			le.Request.Headers = maskHeaders(req.Header, secrets)

			var err error
			if req.Body, le.Request.Body, err = copyAndTrim(req.Body); err != nil {
				lg.LogAttrs(req.Context(), opts.Level, "request failed", slog.Any("err", err))
				return nil, fmt.Errorf("read request body: %w", err)
			}

			lg.LogAttrs(req.Context(), opts.Level, "request sent", slog.Any("request", le.Request))

			start := time.Now()
			resp, err := next.RoundTrip(req)
			le.Elapsed = time.Since(start)

			if err != nil {
				lg.LogAttrs(req.Context(), opts.Level, "request failed",
					slog.Duration("elapsed", le.Elapsed),
					slog.Any("err", err),
				)
				return resp, err
			}

			le.Response.StatusCode = resp.StatusCode
			le.Response.Headers = maskHeaders(resp.Header, secrets)
			if resp.Body, le.Response.Body, err = copyAndTrim(resp.Body); err != nil {
				lg.LogAttrs(req.Context(), opts.Level, "reading response failed",
					slog.Int("status_code", resp.StatusCode),
					slog.Duration("elapsed", le.Elapsed),
					slog.Any("err", err),
				)
				return nil, fmt.Errorf("read response body: %w", err)
			}

			lg.LogAttrs(req.Context(), opts.Level, "response received",
				slog.Any("response", le.Response),
				slog.Duration("elapsed", le.Elapsed),
			)

			return resp, nil
		})
	}
}

func maskHeaders(h http.Header, secrets []string) map[string]string {
	res := make(map[string]string, len(h))
	for k, vals := range h {
		if lo.Contains(secrets, http.CanonicalHeaderKey(k)) {
			res[k] = "***"
			continue
		}
		res[k] = strings.Join(vals, ",")
	}
	return res
}

type logEntry struct {
	Request struct {
		Method  string
		URL     string
		Headers map[string]string
		Body    string
	}
	Response struct {
		StatusCode int
		Headers    map[string]string
		Body       string
	}
	Elapsed time.Duration
}

const trimBodyAt = 1024

func copyAndTrim(r io.ReadCloser) (rd io.ReadCloser, result string, err error) {
	if r == nil || r == http.NoBody {
		return r, "", nil
	}

	rd, result, read, err := readPortion(r, trimBodyAt)
	if err != nil {
		return nil, "", err
	}
	if read == trimBodyAt {
		result += "..."
	}
	result = strings.ReplaceAll(result, "\n", "")
	result = strings.ReplaceAll(result, "\t", "")

	return rd, result, nil
}

// readPortion reads up to limit bytes and returns a reader over the whole
// body. src is closed once it is exhausted or failed.
func readPortion(src io.ReadCloser, limit int64) (rd io.ReadCloser, portion string, read int64, err error) {
	buf := &bytes.Buffer{}

	read, err = io.CopyN(buf, src, limit)
	switch {
	case errors.Is(err, io.EOF):
		_ = src.Close()
		return io.NopCloser(bytes.NewReader(buf.Bytes())), buf.String(), read, nil
	case err != nil:
		_ = src.Close()
		return nil, "", read, err
	}

	return &closer{rd: io.MultiReader(bytes.NewReader(buf.Bytes()), src), closeFn: src.Close}, buf.String(), read, nil
}

type closer struct {
	rd      io.Reader
	closeFn func() error
}

func (c *closer) Read(p []byte) (n int, err error) { return c.rd.Read(p) }
func (c *closer) Close() error                     { return c.closeFn() }
