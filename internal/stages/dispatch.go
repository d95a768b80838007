package stages

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/providers/transcribe"
	mongorepo "github.com/yoockh/callsight/internal/repositories/mongo"
	"github.com/yoockh/callsight/internal/storage"
	"github.com/yoockh/callsight/internal/utils"
)

type DispatchService interface {
	Handle(ctx context.Context, req models.TranscriptionRequest)
}

type dispatchService struct {
	engine       transcribe.Engine
	interactions mongorepo.InteractionRepository
	log          *logrus.Logger
}

func NewDispatchService(engine transcribe.Engine, interactions mongorepo.InteractionRepository, log *logrus.Logger) DispatchService {
	if log == nil {
		log = logrus.New()
	}
	return &dispatchService{engine: engine, interactions: interactions, log: log}
}

// Handle starts the transcription job and records the outcome in the
// interaction's status. A rejected job start is terminal for the
// interaction: the error is recorded as the status and swallowed, no
// retry is scheduled here.
func (s *dispatchService) Handle(ctx context.Context, req models.TranscriptionRequest) {
	log := s.log.WithField("interaction_id", req.InteractionID)

	if req.InteractionID == "" || req.AudioFileKey == "" {
		log.Error("transcription request missing interaction_id or audio_file_key")
		return
	}

	err := s.engine.StartJob(ctx, transcribe.StartJobInput{
		JobName:     req.InteractionID,
		MediaKey:    req.AudioFileKey,
		MediaFormat: req.AudioFormat,
		OutputKey:   storage.TranscriptKey(req.InteractionID),
	})
	if err != nil {
		log.WithError(err).Error("failed to start transcription job")
		if serr := s.setStatus(ctx, req.InteractionID, models.StatusTranscriptionFailed); serr != nil {
			log.WithError(serr).Error("failed to record transcription failure")
		}
		return
	}

	log.Info("transcription job started")
	if serr := s.setStatus(ctx, req.InteractionID, models.StatusTranscribing); serr != nil {
		log.WithError(serr).Error("failed to record transcribing status")
	}
}

// setStatus surfaces update failures to its caller; losing a status write
// must not pass silently even though Handle only logs it.
func (s *dispatchService) setStatus(ctx context.Context, interactionID string, status models.Status) error {
	const op = "DispatchService.setStatus"

	if err := s.interactions.SetStatus(ctx, interactionID, status); err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to update interaction status", err)
	}
	s.log.WithFields(logrus.Fields{"interaction_id": interactionID, "status": status}).Info("updated interaction status")
	return nil
}
