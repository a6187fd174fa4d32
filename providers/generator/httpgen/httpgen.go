package httpgen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/leofalp/fieldex/core/extract"
	"github.com/leofalp/fieldex/internal/utils"
	"github.com/leofalp/fieldex/providers/observability"
)

const (
	// EnvURL names the endpoint URL variable.
	EnvURL = "FIELDEX_GENERATOR_URL"
	// EnvAPIKey names the bearer token variable.
	EnvAPIKey = "FIELDEX_GENERATOR_API_KEY"

	defaultURL     = "http://localhost:8000/generate"
	defaultTimeout = 120 * time.Second
)

// Provider is an HTTP text generator.
type Provider struct {
	apiKey   string
	url      string
	client   *http.Client
	observer observability.Provider
}

// Ensure Provider implements extract.Generator
var _ extract.Generator = (*Provider)(nil)

type request struct {
	Prompt string `json:"prompt"`
}

// New creates a provider configured from the environment.
func New() *Provider {
	url := os.Getenv(EnvURL)
	if url == "" {
		url = defaultURL
	}
	return &Provider{
		apiKey: os.Getenv(EnvAPIKey),
		url:    url,
		client: &http.Client{Timeout: defaultTimeout},
	}
}

// WithAPIKey sets the bearer token.
func (p *Provider) WithAPIKey(apiKey string) *Provider {
	p.apiKey = apiKey
	return p
}

// WithBaseURL sets the endpoint URL.
func (p *Provider) WithBaseURL(url string) *Provider {
	p.url = url
	return p
}

// WithHttpClient sets a custom HTTP client
func (p *Provider) WithHttpClient(httpClient *http.Client) *Provider {
	p.client = httpClient
	return p
}

// WithTimeout sets the request timeout of the current client.
func (p *Provider) WithTimeout(timeout time.Duration) *Provider {
	if timeout > 0 {
		client := *p.client
		client.Timeout = timeout
		p.client = &client
	}
	return p
}

// WithObserver sets the observability provider. Without one, the observer
// carried by the context (if any) is used.
func (p *Provider) WithObserver(observer observability.Provider) *Provider {
	p.observer = observer
	return p
}

// URL returns the configured endpoint.
func (p *Provider) URL() string {
	return p.url
}

// Generate sends prompt to the endpoint.
func (p *Provider) Generate(ctx context.Context, prompt string) (extract.Result, error) {
	observer := p.observer
	if observer == nil {
		observer = observability.ObserverFromContext(ctx)
	}

	var span observability.Span
	if observer != nil {
		ctx, span = observer.StartSpan(ctx, observability.SpanGenerate,
			observability.String(observability.AttrHTTPURL, p.url),
			observability.Int(observability.AttrPromptLength, len(prompt)),
		)
		defer span.End()
	}

	res, err := p.generate(ctx, prompt)
	if span != nil {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(observability.StatusError, "generation failed")
		} else {
			span.SetAttributes(observability.Bool(observability.AttrFieldDetail, res.IsDetail()))
			span.SetStatus(observability.StatusOK, "")
		}
	}
	return res, err
}

func (p *Provider) generate(ctx context.Context, prompt string) (extract.Result, error) {
	_, body, err := utils.DoPostSync[map[string]json.RawMessage](ctx, p.client, p.url, p.apiKey, request{Prompt: prompt})
	if err != nil {
		var statusErr *utils.StatusError
		if errors.As(err, &statusErr) {
			if detail, ok := detailFromBody(statusErr.Body); ok {
				return extract.DetailResult(detail), nil
			}
		}
		return extract.Result{}, fmt.Errorf("generate: %w", err)
	}
	if body == nil {
		return extract.Result{}, fmt.Errorf("generate: %w: empty response", extract.ErrContractViolation)
	}
	return resultFromMembers(*body)
}

// resultFromMembers maps a decoded response object to a Result. Text must be
// a JSON string; a detail may be any JSON value and is kept as text.
func resultFromMembers(members map[string]json.RawMessage) (extract.Result, error) {
	var res extract.Result
	if raw, ok := members["text"]; ok && !isNull(raw) {
		var text string
		if err := json.Unmarshal(raw, &text); err != nil {
			return extract.Result{}, fmt.Errorf("generate: %w: text is not a string", extract.ErrContractViolation)
		}
		res.Text = &text
	}
	if raw, ok := members["detail"]; ok && !isNull(raw) {
		detail := detailText(raw)
		res.Detail = &detail
	}
	if err := res.Validate(); err != nil {
		return extract.Result{}, fmt.Errorf("generate: %w", err)
	}
	return res, nil
}

// detailFromBody extracts the "detail" member of an error response body.
func detailFromBody(body string) (string, bool) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal([]byte(body), &members); err != nil {
		return "", false
	}
	raw, ok := members["detail"]
	if !ok || isNull(raw) {
		return "", false
	}
	return detailText(raw), true
}

// detailText unquotes a JSON string detail and keeps anything else as its
// compact JSON text.
func detailText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func isNull(raw json.RawMessage) bool {
	return strings.TrimSpace(string(raw)) == "null"
}
