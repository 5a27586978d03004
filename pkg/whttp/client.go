package whttp

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
)

// redactedParams are query parameters which carry credentials and must never
// reach the logs.
var redactedParams = []string{"key", "access_key", "appid"}

type LoggingRoundTripper struct {
	Proxied http.RoundTripper
}

func (lrt LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	slog.InfoContext(ctx, "outbound request", "method", req.Method, "url", RedactURL(req.URL))

	res, err := lrt.Proxied.RoundTrip(req)
	if err != nil {
		slog.ErrorContext(ctx, "outbound request failed", "url", RedactURL(req.URL), "error", err.Error())
		return res, err
	}

	// Scripts and other large payloads are only reported by size.
	if !strings.Contains(res.Header.Get("Content-Type"), "json") {
		slog.InfoContext(ctx, "received response", "status", res.Status, "content_length", res.ContentLength)
		return res, nil
	}

	b := bytes.NewBuffer(make([]byte, 0))
	reader := io.TeeReader(res.Body, b)

	body, _ := io.ReadAll(reader)
	slog.InfoContext(ctx, "received response", "status", res.Status, "body", string(body))

	defer res.Body.Close()

	res.Body = io.NopCloser(b)

	return res, nil
}

// NewLoggingClient returns a client without a timeout of its own: requests
// are bounded by their context only.
func NewLoggingClient() *http.Client {
	return &http.Client{
		Transport: LoggingRoundTripper{Proxied: http.DefaultTransport},
	}
}

// RedactURL returns u as a string with credential query parameters masked.
func RedactURL(u *url.URL) string {
	if u == nil {
		return ""
	}

	q := u.Query()
	var changed bool
	for _, p := range redactedParams {
		if q.Has(p) {
			q.Set(p, "*****")
			changed = true
		}
	}

	if !changed {
		return u.String()
	}

	redacted := *u
	redacted.RawQuery = q.Encode()
	return redacted.String()
}

// StripURL drops the request URL net/http adds to transport errors, since it
// carries the API key.
func StripURL(err error) error {
	var uerr *url.Error
	if errors.As(err, &uerr) {
		return fmt.Errorf("%s request: %w", uerr.Op, uerr.Err)
	}

	return err
}
