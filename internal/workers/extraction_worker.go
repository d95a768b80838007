package workers

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/providers/transcribe"
	"github.com/yoockh/callsight/internal/stages"
)

// ExtractionWorker feeds transcription completion events into the
// extraction stage. A failed extraction is logged and the event dropped;
// there is no redelivery for completion events.
type ExtractionWorker struct {
	Engine     transcribe.Engine
	Extraction stages.ExtractionService
	Logger     *logrus.Logger
}

func (w *ExtractionWorker) Start(ctx context.Context) error {
	if w.Engine == nil || w.Extraction == nil {
		return errors.New("ExtractionWorker missing dependency: Engine/Extraction must be set")
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}

	go w.run(ctx)
	return nil
}

func (w *ExtractionWorker) run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Engine.Events():
			if !ok {
				return
			}
			if err := w.Extraction.Handle(ctx, ev); err != nil {
				w.Logger.WithError(err).WithField("interaction_id", ev.JobName).Error("extraction failed")
			}
		}
	}
}
