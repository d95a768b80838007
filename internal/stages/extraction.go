package stages

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/prompt"
	"github.com/yoockh/callsight/internal/providers/llm"
	"github.com/yoockh/callsight/internal/providers/transcribe"
	"github.com/yoockh/callsight/internal/queue"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/transcript"
	"github.com/yoockh/callsight/internal/utils"
)

type ExtractionService interface {
	Handle(ctx context.Context, ev transcribe.JobEvent) error
}

type extractionService struct {
	blobs       storage.BlobStore
	summarizer  llm.Summarizer
	queue       queue.Queue
	stream      string
	templateKey string
	log         *logrus.Logger
}

func NewExtractionService(blobs storage.BlobStore, summarizer llm.Summarizer, q queue.Queue, stream, templateKey string, log *logrus.Logger) ExtractionService {
	if templateKey == "" {
		templateKey = prompt.DefaultTemplateKey
	}
	if log == nil {
		log = logrus.New()
	}
	return &extractionService{blobs: blobs, summarizer: summarizer, queue: q, stream: stream, templateKey: templateKey, log: log}
}

// Handle turns a completed transcription into a summary message. Any
// failure returns without enqueueing; downstream reads the absence of a
// message as the failure signal.
func (s *extractionService) Handle(ctx context.Context, ev transcribe.JobEvent) error {
	const op = "ExtractionService.Handle"
	log := s.log.WithField("interaction_id", ev.JobName)

	if ev.TranscriptKey == "" {
		return utils.E(utils.CodeMalformedEvent, op, "completion event is missing the transcript key", nil)
	}

	raw, err := s.blobs.Get(ctx, ev.TranscriptKey)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to fetch transcript", err)
	}

	doc, err := transcript.Parse(raw)
	if err != nil {
		return err
	}
	text := transcript.Render(doc)
	log.WithField("transcript_chars", len(text)).Info("reconstructed transcript")

	tmpl, err := prompt.Fetch(ctx, s.blobs, s.templateKey)
	if err != nil {
		return err
	}
	rendered, err := prompt.Render(tmpl, text)
	if err != nil {
		return err
	}

	summary, err := s.summarizer.Summarize(ctx, rendered)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "summarization call failed", err)
	}
	log.Info("summarized transcript")

	body, err := json.Marshal(models.SummaryResult{InteractionID: ev.JobName, Summary: summary})
	if err != nil {
		return utils.E(utils.CodeInternal, op, "failed to encode summary result", err)
	}
	if err := s.queue.Send(ctx, s.stream, body); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to enqueue summary result", err)
	}
	log.Info("enqueued summary result")

	return nil
}
