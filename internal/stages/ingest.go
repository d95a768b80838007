// Package stages holds the orchestration logic of the five pipeline
// stages. Each stage runs one invocation start to finish; concurrency
// across interactions comes from the callers running stages in parallel.
package stages

import (
	"bytes"
	"context"
	"encoding/json"
	"mime"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/queue"
	mongorepo "github.com/yoockh/callsight/internal/repositories/mongo"
	"github.com/yoockh/callsight/internal/schema"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/utils"
)

type IngestService interface {
	Ingest(ctx context.Context, audio []byte, metadataRaw []byte) (*models.Interaction, error)
}

type ingestService struct {
	blobs        storage.BlobStore
	interactions mongorepo.InteractionRepository
	queue        queue.Queue
	stream       string
	log          *logrus.Logger
}

func NewIngestService(blobs storage.BlobStore, interactions mongorepo.InteractionRepository, q queue.Queue, stream string, log *logrus.Logger) IngestService {
	if log == nil {
		log = logrus.New()
	}
	return &ingestService{blobs: blobs, interactions: interactions, queue: q, stream: stream, log: log}
}

// Ingest validates the metadata, stores the audio blob, records the
// interaction at status Uploaded, and enqueues a transcription request —
// strictly in that order. A failure midway leaves earlier writes in
// place; the interaction row is the source of truth downstream, so an
// orphaned blob is acceptable and a row without a queued request simply
// never progresses.
func (s *ingestService) Ingest(ctx context.Context, audio []byte, metadataRaw []byte) (*models.Interaction, error) {
	const op = "IngestService.Ingest"

	md, err := schema.ValidateMetadata(metadataRaw)
	if err != nil {
		return nil, err
	}

	interactionID := uuid.NewString()
	audioKey := storage.AudioKey(interactionID, md.AudioFormat)
	log := s.log.WithFields(logrus.Fields{"interaction_id": interactionID, "audio_file_key": audioKey})

	contentType := mime.TypeByExtension("." + md.AudioFormat)
	if err := s.blobs.Put(ctx, audioKey, contentType, bytes.NewReader(audio)); err != nil {
		log.WithError(err).Error("failed to store audio blob")
		return nil, utils.E(utils.CodeUnavailable, op, "failed to store audio", err)
	}
	log.Info("stored audio blob")

	row := &models.Interaction{
		InteractionID: interactionID,
		CustomerID:    md.CustomerID,
		AgentID:       md.AgentID,
		Timestamp:     md.Timestamp,
		CallDuration:  md.CallDuration,
		AudioFormat:   md.AudioFormat,
		AudioFileKey:  audioKey,
		Status:        models.StatusUploaded,
	}
	if err := s.interactions.Create(ctx, row); err != nil {
		log.WithError(err).Error("failed to record interaction")
		return nil, utils.E(utils.CodeUnavailable, op, "failed to record interaction", err)
	}
	log.Info("recorded interaction")

	body, err := json.Marshal(models.TranscriptionRequest{
		InteractionID: interactionID,
		AudioFileKey:  audioKey,
		AudioFormat:   md.AudioFormat,
	})
	if err != nil {
		return nil, utils.E(utils.CodeInternal, op, "failed to encode transcription request", err)
	}
	if err := s.queue.Send(ctx, s.stream, body); err != nil {
		log.WithError(err).Error("failed to enqueue transcription request")
		return nil, utils.E(utils.CodeUnavailable, op, "failed to enqueue transcription request", err)
	}
	log.Info("enqueued transcription request")

	return row, nil
}
