package source

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/leofalp/fieldex/internal/utils"
)

const (
	// DefaultTimeout is the default HTTP request timeout
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is the default User-Agent header value
	DefaultUserAgent = "fieldex-source/1.0"
	// DialTimeout is the maximum time to wait for a TCP connection
	DialTimeout = 10 * time.Second
	// TLSHandshakeTimeout is the maximum time to wait for TLS handshake
	TLSHandshakeTimeout = 10 * time.Second
	// maxRedirects is the number of redirects followed before giving up
	maxRedirects = 10
)

// ErrEmptyReference is returned by [Loader.Load] for a blank reference.
var ErrEmptyReference = errors.New("fieldex: empty source reference")

// Kind is where a document came from.
type Kind string

const (
	KindURL     Kind = "url"
	KindFile    Kind = "file"
	KindLiteral Kind = "literal"
)

// Document is a loaded source, ready to be used as an extraction prompt.
type Document struct {
	// Origin is the final URL after redirects, the file path, or "" for
	// literal text.
	Origin string `json:"origin,omitempty"`
	Kind   Kind   `json:"kind"`
	// Text is the document content; HTML has already been converted to
	// Markdown.
	Text string `json:"text"`
	// Converted reports whether Text was produced from HTML.
	Converted bool `json:"converted,omitempty"`
}

// Loader resolves source references.
type Loader struct {
	client    *http.Client
	userAgent string
	rawHTML   bool
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client used for URLs.
func WithHTTPClient(client *http.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithTimeout sets the overall HTTP timeout of the default client.
func WithTimeout(timeout time.Duration) Option {
	return func(l *Loader) {
		if timeout > 0 {
			l.client.Timeout = timeout
		}
	}
}

// WithUserAgent sets the User-Agent header sent with URL requests.
func WithUserAgent(userAgent string) Option {
	return func(l *Loader) {
		l.userAgent = userAgent
	}
}

// WithRawHTML disables the HTML to Markdown conversion.
func WithRawHTML() Option {
	return func(l *Loader) {
		l.rawHTML = true
	}
}

// NewLoader returns a loader with bounded dial, TLS and redirect limits.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		client:    newHTTPClient(DefaultTimeout),
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func newHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout:   DialTimeout,
				KeepAlive: 30 * time.Second,
			}).DialContext,
			TLSHandshakeTimeout: TLSHandshakeTimeout,
			MaxIdleConnsPerHost: 10,
			ForceAttemptHTTP2:   true,
		},
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) >= maxRedirects {
				return fmt.Errorf("too many redirects (>%d)", maxRedirects)
			}
			return nil
		},
	}
}

// Load resolves ref to a document. URLs must carry an explicit http:// or
// https:// scheme; a path that does not exist is treated as literal text.
func (l *Loader) Load(ctx context.Context, ref string) (Document, error) {
	trimmed := strings.TrimSpace(ref)
	switch {
	case trimmed == "":
		return Document{}, ErrEmptyReference
	case strings.HasPrefix(trimmed, "http://") || strings.HasPrefix(trimmed, "https://"):
		return l.loadURL(ctx, trimmed)
	}

	if info, err := os.Stat(trimmed); err == nil && info.Mode().IsRegular() {
		return l.loadFile(trimmed)
	}
	return l.document(KindLiteral, "", ref, looksLikeHTML(ref))
}

func (l *Loader) loadURL(ctx context.Context, url string) (Document, error) {
	res, body, err := utils.DoGet(ctx, l.client, url,
		utils.HeaderOption{Key: "User-Agent", Value: l.userAgent},
		utils.HeaderOption{Key: "Accept", Value: "text/html, text/plain;q=0.9, */*;q=0.5"},
	)
	if err != nil {
		return Document{}, fmt.Errorf("fetch %s: %w", url, err)
	}

	origin := url
	if res.Request != nil && res.Request.URL != nil {
		origin = res.Request.URL.String()
	}

	isHTML := looksLikeHTML(string(body))
	if mediaType, _, err := mime.ParseMediaType(res.Header.Get("Content-Type")); err == nil {
		isHTML = mediaType == "text/html" || mediaType == "application/xhtml+xml"
	}
	return l.document(KindURL, origin, string(body), isHTML)
}

func (l *Loader) loadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read %s: %w", path, err)
	}
	if len(data) > utils.MaxBodySize {
		return Document{}, fmt.Errorf("read %s: file exceeds maximum size of %d bytes", path, utils.MaxBodySize)
	}

	isHTML := looksLikeHTML(string(data))
	switch strings.ToLower(filepath.Ext(path)) {
	case ".html", ".htm", ".xhtml":
		isHTML = true
	case ".md", ".txt":
		isHTML = false
	}
	return l.document(KindFile, path, string(data), isHTML)
}

func (l *Loader) document(kind Kind, origin, text string, isHTML bool) (Document, error) {
	doc := Document{Origin: origin, Kind: kind, Text: text}
	if !isHTML || l.rawHTML {
		return doc, nil
	}

	markdown, err := htmltomarkdown.ConvertString(text)
	if err != nil {
		return Document{}, fmt.Errorf("failed to convert HTML to Markdown: %w", err)
	}
	doc.Text = strings.TrimSpace(markdown)
	doc.Converted = true
	return doc, nil
}

// looksLikeHTML reports whether s starts with a doctype or a tag and
// contains a closing tag.
func looksLikeHTML(s string) bool {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "<") {
		return false
	}
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "<!doctype html") || strings.Contains(lower, "</")
}
