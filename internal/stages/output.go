package stages

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/queue"
	mongorepo "github.com/yoockh/callsight/internal/repositories/mongo"
	pgrepo "github.com/yoockh/callsight/internal/repositories/postgres"
	"github.com/yoockh/callsight/internal/schema"
	"github.com/yoockh/callsight/internal/utils"
)

type OutputService interface {
	Run(ctx context.Context) error
}

type outputService struct {
	queue        queue.Queue
	stream       string
	interactions mongorepo.InteractionRepository
	analyses     pgrepo.AnalysisRepository
	log          *logrus.Logger
}

func NewOutputService(q queue.Queue, stream string, interactions mongorepo.InteractionRepository, analyses pgrepo.AnalysisRepository, log *logrus.Logger) OutputService {
	if log == nil {
		log = logrus.New()
	}
	return &outputService{queue: q, stream: stream, interactions: interactions, analyses: analyses, log: log}
}

// Run consumes at most one analysis message. No message pending is a
// normal no-op. A message that fails validation or references an unknown
// interaction is acked and dropped — redelivery cannot fix it. Only a
// collaborator failure leaves the message pending for redelivery.
func (s *outputService) Run(ctx context.Context) error {
	const op = "OutputService.Run"

	msgs, err := s.queue.Receive(ctx, s.stream, 1)
	if err != nil {
		return utils.E(utils.CodeUnavailable, op, "failed to receive analysis message", err)
	}
	if len(msgs) == 0 {
		return nil
	}
	msg := msgs[0]

	parsed, err := schema.ValidateAnalysisMessage(msg.Body)
	if err != nil {
		s.log.WithError(err).Error("dropping invalid analysis message")
		_ = s.queue.Ack(ctx, s.stream, msg.ID)
		return err
	}
	log := s.log.WithField("interaction_id", parsed.InteractionID)

	it, err := s.interactions.GetByInteractionID(ctx, parsed.InteractionID)
	if err != nil {
		if errors.Is(err, utils.ErrNotFound) {
			log.Error("interaction not found for analysis message")
			_ = s.queue.Ack(ctx, s.stream, msg.ID)
			return utils.E(utils.CodeNotFound, op, "interaction not found", err)
		}
		return utils.E(utils.CodeUnavailable, op, "failed to look up interaction", err)
	}

	row := consolidate(it, parsed, msg.Body)
	if err := s.analyses.Insert(ctx, row); err != nil {
		// Best-effort terminal write: logged, message left pending.
		log.WithError(err).Error("failed to persist interaction analysis")
		return utils.E(utils.CodeUnavailable, op, "failed to persist interaction analysis", err)
	}
	log.Info("persisted interaction analysis")

	_ = s.queue.Ack(ctx, s.stream, msg.ID)
	return nil
}

// consolidate joins the stored interaction with the validated message
// into the final analytics row.
func consolidate(it *models.Interaction, msg models.AnalysisMessage, raw []byte) *models.InteractionAnalysis {
	return &models.InteractionAnalysis{
		InteractionID: it.InteractionID,

		AgentID:      it.AgentID,
		CustomerID:   it.CustomerID,
		CallDuration: it.CallDuration,

		AssignedTo:           msg.AssignedTo,
		DueDate:              msg.DueDate,
		Topic:                msg.Topic,
		SatisfactionScore:    msg.SatisfactionScore,
		SentimentAnalysis:    msg.SentimentAnalysis,
		FeedbackComments:     msg.FeedbackComments,
		ComplianceStatus:     msg.ComplianceStatus,
		EscalationFlag:       msg.EscalationFlag,
		EscalationReason:     msg.EscalationReason,
		AgentEfficiencyScore: msg.AgentEfficiencyScore,
		FollowUpFlag:         msg.FollowUpFlag,
		FollowUpNotes:        msg.FollowUpNotes,

		RawPayload: datatypes.JSON(json.RawMessage(raw)),
		CreatedAt:  time.Now().UTC(),
	}
}
