package stages

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/providers/transcribe"
	"github.com/yoockh/callsight/internal/queue"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/utils"
)

const transcriptDoc = `{"results":{"items":[
	{"type":"pronunciation","speaker_label":"spk_0","alternatives":[{"content":"Hello"}]},
	{"type":"punctuation","alternatives":[{"content":","}]},
	{"type":"pronunciation","speaker_label":"spk_1","alternatives":[{"content":"Hi"}]}
]}}`

func extractionFixture(t *testing.T) (*storage.MemoryStore, *fakeSummarizer, *queue.MemoryQueue, ExtractionService) {
	t.Helper()
	ctx := context.Background()

	blobs := storage.NewMemoryStore()
	if err := blobs.Put(ctx, "transcription/i-1.json", "application/json", bytes.NewReader([]byte(transcriptDoc))); err != nil {
		t.Fatalf("put transcript: %v", err)
	}
	if err := blobs.Put(ctx, "template.txt", "text/plain", bytes.NewReader([]byte("Summarize:{{.Transcript}}"))); err != nil {
		t.Fatalf("put template: %v", err)
	}

	sum := &fakeSummarizer{summary: "the customer disputed a fee"}
	mq := queue.NewMemoryQueue()
	svc := NewExtractionService(blobs, sum, mq, "summaries", "template.txt", nil)
	return blobs, sum, mq, svc
}

func TestExtractionHappyPath(t *testing.T) {
	_, sum, mq, svc := extractionFixture(t)

	err := svc.Handle(context.Background(), transcribe.JobEvent{JobName: "i-1", TranscriptKey: "transcription/i-1.json"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}

	if !strings.Contains(sum.prompt, "\nspk_0: Hello, \nspk_1: Hi ") {
		t.Fatalf("prompt transcript wrong: %q", sum.prompt)
	}
	if !strings.HasPrefix(sum.prompt, "Summarize:") {
		t.Fatalf("template not applied: %q", sum.prompt)
	}

	msgs, _ := mq.Receive(context.Background(), "summaries", 10)
	if len(msgs) != 1 {
		t.Fatalf("summary sends = %d, want 1", len(msgs))
	}
	var res models.SummaryResult
	if err := json.Unmarshal(msgs[0].Body, &res); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if res.InteractionID != "i-1" || res.Summary != "the customer disputed a fee" {
		t.Fatalf("summary result = %+v", res)
	}
}

func TestExtractionMissingPointerIsMalformedEvent(t *testing.T) {
	_, _, mq, svc := extractionFixture(t)

	err := svc.Handle(context.Background(), transcribe.JobEvent{JobName: "i-1"})
	if !utils.IsCode(err, utils.CodeMalformedEvent) {
		t.Fatalf("expected MALFORMED_EVENT, got %v", err)
	}
	if mq.Len("summaries") != 0 {
		t.Fatal("message enqueued despite malformed event")
	}
}

func TestExtractionFailuresEnqueueNothing(t *testing.T) {
	tests := []struct {
		name string
		ev   transcribe.JobEvent
		prep func(*storage.MemoryStore, *fakeSummarizer)
	}{
		{
			name: "transcript missing",
			ev:   transcribe.JobEvent{JobName: "i-9", TranscriptKey: "transcription/i-9.json"},
		},
		{
			name: "summarizer failure",
			ev:   transcribe.JobEvent{JobName: "i-1", TranscriptKey: "transcription/i-1.json"},
			prep: func(_ *storage.MemoryStore, s *fakeSummarizer) { s.err = errBoom },
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			blobs, sum, mq, svc := extractionFixture(t)
			if tc.prep != nil {
				tc.prep(blobs, sum)
			}
			if err := svc.Handle(context.Background(), tc.ev); err == nil {
				t.Fatal("expected error")
			}
			if mq.Len("summaries") != 0 {
				t.Fatal("partial message enqueued")
			}
		})
	}
}
