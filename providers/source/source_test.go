package source

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leofalp/fieldex/internal/utils"
)

const minutesHTML = `<html><body><h1>Minutes</h1><p>Budget is <strong>1250</strong> EUR.</p></body></html>`

func TestLoad_Literal(t *testing.T) {
	tests := []struct {
		name          string
		ref           string
		wantConverted bool
		wantContains  []string
	}{
		{name: "plain text", ref: "Meeting at noon in room 4.", wantContains: []string{"Meeting at noon in room 4."}},
		{name: "angle bracket prose", ref: "<3 this team", wantContains: []string{"<3 this team"}},
		{name: "html fragment", ref: minutesHTML, wantConverted: true, wantContains: []string{"# Minutes", "**1250**"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := NewLoader().Load(context.Background(), tt.ref)
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if doc.Kind != KindLiteral || doc.Origin != "" {
				t.Errorf("Kind = %s, Origin = %q; want literal without origin", doc.Kind, doc.Origin)
			}
			if doc.Converted != tt.wantConverted {
				t.Errorf("Converted = %v, want %v", doc.Converted, tt.wantConverted)
			}
			for _, want := range tt.wantContains {
				if !strings.Contains(doc.Text, want) {
					t.Errorf("Text = %q, missing %q", doc.Text, want)
				}
			}
		})
	}
}

func TestLoad_File(t *testing.T) {
	dir := t.TempDir()
	htmlPath := filepath.Join(dir, "minutes.html")
	textPath := filepath.Join(dir, "minutes.txt")
	if err := os.WriteFile(htmlPath, []byte(minutesHTML), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(textPath, []byte(minutesHTML), 0o600); err != nil {
		t.Fatal(err)
	}

	doc, err := NewLoader().Load(context.Background(), htmlPath)
	if err != nil {
		t.Fatalf("Load(html) error = %v", err)
	}
	if doc.Kind != KindFile || doc.Origin != htmlPath || !doc.Converted {
		t.Errorf("Load(html) = %+v", doc)
	}
	if strings.Contains(doc.Text, "<p>") {
		t.Errorf("HTML not converted: %q", doc.Text)
	}

	doc, err = NewLoader().Load(context.Background(), textPath)
	if err != nil {
		t.Fatalf("Load(txt) error = %v", err)
	}
	if doc.Converted || doc.Text != minutesHTML {
		t.Errorf("Load(txt) converted a .txt file: %+v", doc)
	}

	doc, err = NewLoader().Load(context.Background(), filepath.Join(dir, "missing.txt"))
	if err != nil || doc.Kind != KindLiteral {
		t.Errorf("Load(missing path) = %+v, %v; want literal", doc, err)
	}
}

func TestLoad_URL(t *testing.T) {
	var gotAgent string
	mux := http.NewServeMux()
	mux.HandleFunc("/minutes", func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, minutesHTML)
	})
	mux.HandleFunc("/old", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/minutes", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/notes.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, "<b>not html</b>")
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	loader := NewLoader(WithHTTPClient(server.Client()), WithUserAgent("fieldex-test"))

	doc, err := loader.Load(context.Background(), server.URL+"/old")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Kind != KindURL || doc.Origin != server.URL+"/minutes" {
		t.Errorf("Kind = %s, Origin = %q; want redirect target", doc.Kind, doc.Origin)
	}
	if !doc.Converted || !strings.Contains(doc.Text, "**1250**") {
		t.Errorf("Text = %q, want converted markdown", doc.Text)
	}
	if gotAgent != "fieldex-test" {
		t.Errorf("User-Agent = %q", gotAgent)
	}

	doc, err = loader.Load(context.Background(), server.URL+"/notes.txt")
	if err != nil {
		t.Fatalf("Load(text/plain) error = %v", err)
	}
	if doc.Converted || doc.Text != "<b>not html</b>" {
		t.Errorf("text/plain document was converted: %+v", doc)
	}

	_, err = loader.Load(context.Background(), server.URL+"/missing")
	var statusErr *utils.StatusError
	if !errors.As(err, &statusErr) || statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("Load(missing) error = %v, want 404", err)
	}
}

func TestLoad_Options(t *testing.T) {
	doc, err := NewLoader(WithRawHTML()).Load(context.Background(), minutesHTML)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if doc.Converted || doc.Text != minutesHTML {
		t.Errorf("WithRawHTML converted the document: %+v", doc)
	}

	if _, err := NewLoader().Load(context.Background(), "   "); !errors.Is(err, ErrEmptyReference) {
		t.Errorf("Load(blank) error = %v, want ErrEmptyReference", err)
	}
}

func TestLooksLikeHTML(t *testing.T) {
	tests := map[string]bool{
		"<!DOCTYPE html><html></html>": true,
		"<p>hi</p>":                    true,
		"  <div>x</div>\n":             true,
		"<br>":                         false,
		"plain":                        false,
		"a <b>bold</b> move":           false,
	}
	for input, want := range tests {
		if got := looksLikeHTML(input); got != want {
			t.Errorf("looksLikeHTML(%q) = %v, want %v", input, got, want)
		}
	}
}
