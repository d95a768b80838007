package prompt

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/yoockh/callsight/internal/storage"
)

func TestRender(t *testing.T) {
	out, err := Render("Summarize this call:\n{{.Transcript}}\nBe brief.", "\nspk0: Hello ")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(out, "spk0: Hello") {
		t.Fatalf("transcript not substituted: %q", out)
	}
	if !strings.HasPrefix(out, "Summarize this call:") || !strings.HasSuffix(out, "Be brief.") {
		t.Fatalf("template text mangled: %q", out)
	}
}

func TestRenderMalformedTemplate(t *testing.T) {
	if _, err := Render("{{.Transcript", "x"); err == nil {
		t.Fatal("expected error for malformed template")
	}
}

func TestFetch(t *testing.T) {
	blobs := storage.NewMemoryStore()
	ctx := context.Background()
	if err := blobs.Put(ctx, DefaultTemplateKey, "text/plain", bytes.NewReader([]byte("tmpl {{.Transcript}}"))); err != nil {
		t.Fatalf("put: %v", err)
	}

	// empty key falls back to the default
	got, err := Fetch(ctx, blobs, "")
	if err != nil {
		t.Fatalf("fetch: %v", err)
	}
	if got != "tmpl {{.Transcript}}" {
		t.Fatalf("fetched %q", got)
	}

	if _, err := Fetch(ctx, blobs, "missing.txt"); err == nil {
		t.Fatal("expected error for missing template")
	}
}
