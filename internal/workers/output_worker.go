package workers

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yoockh/callsight/internal/stages"
	"github.com/yoockh/callsight/internal/utils"
)

// OutputWorker invokes the output consolidation stage on a fixed poll
// interval, one message per invocation.
type OutputWorker struct {
	Output   stages.OutputService
	Logger   *logrus.Logger
	Interval time.Duration
}

func (w *OutputWorker) Start(ctx context.Context) error {
	if w.Output == nil {
		return errors.New("OutputWorker missing dependency: Output must be set")
	}
	if w.Interval <= 0 {
		w.Interval = 5 * time.Second
	}
	if w.Logger == nil {
		w.Logger = logrus.New()
	}

	go w.run(ctx)
	return nil
}

func (w *OutputWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := w.Output.Run(ctx); err != nil && !utils.IsCode(err, utils.CodeInvalidArgument) {
				w.Logger.WithError(err).Error("output consolidation failed")
			}
		}
	}
}
