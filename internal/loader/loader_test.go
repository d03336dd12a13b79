package loader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	"go.uber.org/goleak"

	"github.com/goliatone/go-formlayers/pkg/source"
)

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bundle.json")
	if err := os.WriteFile(path, []byte(`{"schema": {}}`), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}

	doc, err := New(source.NewLoaderOptions()).Load(context.Background(), source.File(path))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"schema": {}}` {
		t.Fatalf("unexpected payload: %s", doc.Raw())
	}
	if doc.Location() != path {
		t.Fatalf("unexpected location: %s", doc.Location())
	}
}

func TestLoad_FS(t *testing.T) {
	files := fstest.MapFS{
		"forms/profile.yaml": {Data: []byte("schema: {}\n")},
	}
	l := New(source.NewLoaderOptions(source.WithFileSystem(files)))

	doc, err := l.Load(context.Background(), source.FS("forms/profile.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != "schema: {}\n" {
		t.Fatalf("unexpected payload: %q", doc.Raw())
	}

	if _, err := l.Load(context.Background(), source.FS("missing.yaml")); err == nil {
		t.Fatalf("expected error for missing fs entry")
	}
}

func TestLoad_HTTPDisabledByDefault(t *testing.T) {
	src, err := source.URL("http://127.0.0.1:1/bundle.json")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	if _, err := New(source.NewLoaderOptions()).Load(context.Background(), src); err == nil {
		t.Fatalf("expected http sources to be rejected without a client")
	}
}

func TestLoad_HTTP(t *testing.T) {
	defer goleak.VerifyNone(t)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/bundle.json" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write([]byte(`{"schema": {"properties": {}}}`))
	}))
	defer server.Close()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	l := New(source.NewLoaderOptions(source.WithHTTPClient(client)))

	src, err := source.URL(server.URL + "/bundle.json")
	if err != nil {
		t.Fatalf("url: %v", err)
	}
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if string(doc.Raw()) != `{"schema": {"properties": {}}}` {
		t.Fatalf("unexpected payload: %s", doc.Raw())
	}

	missing, _ := source.URL(server.URL + "/missing.json")
	if _, err := l.Load(context.Background(), missing); err == nil {
		t.Fatalf("expected error for 404 response")
	}
}

func TestLoad_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New(source.NewLoaderOptions()).Load(ctx, source.File("whatever.json")); err == nil {
		t.Fatalf("expected error for canceled context")
	}
}

func TestLoad_HTTPBodyLimit(t *testing.T) {
	defer goleak.VerifyNone(t)

	payload := strings.Repeat("x", 64)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/sized.json":
			_, _ = w.Write([]byte(payload))
		case "/streamed.json":
			_, _ = w.Write([]byte(payload[:8]))
			w.(http.Flusher).Flush()
			_, _ = w.Write([]byte(payload[8:]))
		case "/small.json":
			_, _ = w.Write([]byte(payload[:16]))
		}
	}))
	defer server.Close()

	client := &http.Client{Transport: &http.Transport{DisableKeepAlives: true}}
	l := New(source.NewLoaderOptions(source.WithHTTPClient(client), source.WithMaxBodyBytes(16)))

	for _, name := range []string{"/sized.json", "/streamed.json"} {
		src, _ := source.URL(server.URL + name)
		_, err := l.Load(context.Background(), src)
		if err == nil || !strings.Contains(err.Error(), "limit") {
			t.Fatalf("%s: expected size limit error, got %v", name, err)
		}
	}

	src, _ := source.URL(server.URL + "/small.json")
	doc, err := l.Load(context.Background(), src)
	if err != nil {
		t.Fatalf("load at the limit: %v", err)
	}
	if len(doc.Raw()) != 16 {
		t.Fatalf("unexpected payload length %d", len(doc.Raw()))
	}

	if got := source.NewLoaderOptions().MaxBodyBytes; got != source.DefaultMaxBodyBytes {
		t.Fatalf("expected default limit, got %d", got)
	}
}
