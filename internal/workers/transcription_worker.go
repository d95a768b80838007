// Package workers runs the consumer loops that drive the asynchronous
// pipeline stages.
package workers

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/models"
	"github.com/yoockh/callsight/internal/queue"
	"github.com/yoockh/callsight/internal/stages"
)

// TranscriptionWorkerPool consumes transcription requests and hands each
// to the dispatch stage. The stage swallows its own failures, so every
// delivered message is acked; queue redelivery only covers crashes
// between receive and ack.
type TranscriptionWorkerPool struct {
	Queue      queue.Queue
	Dispatch   stages.DispatchService
	Logger     *logrus.Logger
	Stream     string
	NumWorkers int
}

func (p *TranscriptionWorkerPool) Start(ctx context.Context) error {
	if p.Queue == nil || p.Dispatch == nil {
		return errors.New("TranscriptionWorkerPool missing dependency: Queue/Dispatch must be set")
	}
	if p.Stream == "" {
		p.Stream = "transcriptions"
	}
	if p.NumWorkers <= 0 {
		p.NumWorkers = 4
	}
	if p.Logger == nil {
		p.Logger = logrus.New()
	}

	for i := 0; i < p.NumWorkers; i++ {
		go p.runConsumer(ctx, "t-"+strconv.Itoa(i+1))
	}
	return nil
}

func (p *TranscriptionWorkerPool) runConsumer(ctx context.Context, name string) {
	log := p.Logger.WithFields(logrus.Fields{"consumer": name, "stream": p.Stream})

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msgs, err := p.Queue.Receive(ctx, p.Stream, 10)
		if err != nil {
			log.WithError(err).Warn("receive failed")
			time.Sleep(500 * time.Millisecond)
			continue
		}

		for _, msg := range msgs {
			var req models.TranscriptionRequest
			if err := json.Unmarshal(msg.Body, &req); err != nil {
				log.WithError(err).Error("dropping undecodable transcription request")
			} else {
				p.Dispatch.Handle(ctx, req)
			}
			if err := p.Queue.Ack(ctx, p.Stream, msg.ID); err != nil {
				log.WithError(err).Warn("ack failed")
			}
		}
	}
}
