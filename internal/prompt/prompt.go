// Package prompt renders the summarization prompt from a blob-stored
// template.
package prompt

import (
	"context"
	"strings"
	"text/template"

	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/utils"
)

// DefaultTemplateKey is where the summarization template lives in the
// blob store.
const DefaultTemplateKey = "template.txt"

type templateData struct {
	Transcript string
}

// Render substitutes transcript into the {{.Transcript}} placeholder of
// templateText.
func Render(templateText, transcript string) (string, error) {
	const op = "prompt.Render"

	tmpl, err := template.New("summary").Parse(templateText)
	if err != nil {
		return "", utils.E(utils.CodeInternal, op, "malformed prompt template", err)
	}

	var b strings.Builder
	if err := tmpl.Execute(&b, templateData{Transcript: transcript}); err != nil {
		return "", utils.E(utils.CodeInternal, op, "failed to render prompt template", err)
	}
	return b.String(), nil
}

// Fetch loads the template text from the blob store.
func Fetch(ctx context.Context, blobs storage.BlobStore, key string) (string, error) {
	const op = "prompt.Fetch"

	if key == "" {
		key = DefaultTemplateKey
	}
	raw, err := blobs.Get(ctx, key)
	if err != nil {
		return "", utils.E(utils.CodeUnavailable, op, "failed to fetch prompt template", err)
	}
	return string(raw), nil
}
