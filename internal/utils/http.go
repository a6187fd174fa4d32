package utils

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/leofalp/fieldex/providers/observability"
)

const (
	// MaxBodySize is the largest response body read by [DoPostSync] and [DoGet] (10MB).
	MaxBodySize = 10 * 1024 * 1024

	// maxErrorBody bounds the response body kept in a StatusError.
	maxErrorBody = 1024
)

// HeaderOption is an extra request header.
type HeaderOption struct {
	Key   string
	Value string
}

// StatusError reports a non-2xx HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("non-2xx status %d: %s", e.StatusCode, e.Body)
}

// CloseWithLog closes c and logs, rather than returns, any error.
func CloseWithLog(c io.Closer) {
	if err := c.Close(); err != nil {
		slog.Warn("failed to close", "error", err.Error())
	}
}

// DoPostSync performs a synchronous HTTP POST request with JSON body and parses the response.
// It records span events on the span found in ctx, sets a Bearer
// Authorization header when apiKey is non-empty and always closes the
// response body.
//
// Error Handling Strategy:
//   - Context errors (timeout, cancellation) are propagated immediately
//   - Non-2xx responses return a *StatusError carrying a prefix of the body
//   - JSON parsing errors include a response preview for debugging
func DoPostSync[OutputStruct any](ctx context.Context, client *http.Client, url string, apiKey string, body any, headers ...HeaderOption) (*http.Response, *OutputStruct, error) {
	jsonBody, err := json.Marshal(body)
	if err != nil {
		return nil, nil, fmt.Errorf("error marshaling body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(jsonBody))
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+apiKey)
	}

	res, respBody, err := do(ctx, client, req, len(jsonBody), headers)
	if err != nil {
		return res, nil, err
	}

	var resStruct OutputStruct
	if err = json.Unmarshal(respBody, &resStruct); err != nil {
		return res, nil, fmt.Errorf("error unmarshaling response body (status %d): %w\nResponse preview: %s",
			res.StatusCode, err, TruncateString(string(respBody), 500))
	}
	return res, &resStruct, nil
}

// DoGet performs a GET request and returns the full response body.
func DoGet(ctx context.Context, client *http.Client, url string, headers ...HeaderOption) (*http.Response, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, nil, fmt.Errorf("error creating request: %w", err)
	}
	return do(ctx, client, req, 0, headers)
}

// do sends req, reads the whole body and turns non-2xx responses into a
// *StatusError. Headers are applied last so callers can override defaults.
func do(ctx context.Context, client *http.Client, req *http.Request, bodySize int, headers []HeaderOption) (*http.Response, []byte, error) {
	span := observability.SpanFromContext(ctx)

	httpClient := client
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	for _, h := range headers {
		req.Header.Set(h.Key, h.Value)
	}

	url := req.URL.String()
	if span != nil {
		span.AddEvent(observability.EventHTTPRequestStart,
			observability.String(observability.AttrHTTPMethod, req.Method),
			observability.String(observability.AttrHTTPURL, url),
			observability.Int(observability.AttrHTTPRequestBodySize, bodySize),
		)
	}

	start := time.Now()
	res, err := httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		if span != nil {
			span.AddEvent(observability.EventHTTPRequestEnd,
				observability.Error(err),
				observability.Duration(observability.AttrDuration, elapsed),
			)
		}
		return res, nil, fmt.Errorf("error sending request: %w", err)
	}
	defer CloseWithLog(res.Body)

	respBody, err := io.ReadAll(io.LimitReader(res.Body, MaxBodySize+1))
	if err != nil {
		return res, nil, fmt.Errorf("error reading response body: %w", err)
	}
	if len(respBody) > MaxBodySize {
		return res, nil, fmt.Errorf("response body exceeds maximum size of %d bytes", MaxBodySize)
	}

	if span != nil {
		span.AddEvent(observability.EventHTTPRequestEnd,
			observability.Int(observability.AttrHTTPStatusCode, res.StatusCode),
			observability.Int(observability.AttrHTTPResponseBodySize, len(respBody)),
			observability.Duration(observability.AttrDuration, elapsed),
		)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return res, nil, &StatusError{
			StatusCode: res.StatusCode,
			Body:       TruncateString(string(respBody), maxErrorBody),
		}
	}
	return res, respBody, nil
}
